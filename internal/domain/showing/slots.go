package showing

// Slots は1日の上映時刻の固定枠
var Slots = []string{
	"10:00 AM",
	"12:30 PM",
	"3:00 PM",
	"6:30 PM",
	"9:00 PM",
}

// IsValidSlot は上映時刻が固定枠に含まれるかを返す
func IsValidSlot(slot string) bool {
	for _, s := range Slots {
		if s == slot {
			return true
		}
	}
	return false
}
