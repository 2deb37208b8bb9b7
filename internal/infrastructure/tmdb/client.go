package tmdb

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/sanosuguru/go-movie-ticket-booking/internal/domain/movie"
)

var (
	ErrRequestFailed = errors.New("TMDB APIリクエストに失敗しました")
	ErrMovieNotFound = errors.New("TMDB上に映画が見つかりません")
	ErrUnauthorized  = errors.New("TMDB APIキーが無効です")
	ErrInvalidRegion = errors.New("サポートされていないリージョンです")
)

var supportedRegions = []Region{
	{Code: "IN", Name: "India"},
	{Code: "US", Name: "United States"},
	{Code: "GB", Name: "United Kingdom"},
	{Code: "CA", Name: "Canada"},
	{Code: "AU", Name: "Australia"},
}

// Region は上映中作品の取得対象リージョン
type Region struct {
	Code string `json:"code"`
	Name string `json:"name"`
}

// Client はTMDB APIクライアント
type Client struct {
	httpClient    *http.Client
	baseURL       string
	apiKey        string
	defaultRegion string
}

// NewClient は新しいTMDBクライアントを作成する
func NewClient(baseURL, apiKey, defaultRegion string, timeout time.Duration) *Client {
	return &Client{
		httpClient:    &http.Client{Timeout: timeout},
		baseURL:       baseURL,
		apiKey:        apiKey,
		defaultRegion: defaultRegion,
	}
}

// Regions はサポート対象のリージョン一覧を返す
func (c *Client) Regions() []Region {
	regions := make([]Region, len(supportedRegions))
	copy(regions, supportedRegions)
	return regions
}

// IsSupportedRegion はリージョンコードの妥当性を検証する
func (c *Client) IsSupportedRegion(code string) bool {
	for _, r := range supportedRegions {
		if r.Code == code {
			return true
		}
	}
	return false
}

type movieResult struct {
	ID          int64   `json:"id"`
	Title       string  `json:"title"`
	Overview    string  `json:"overview"`
	PosterPath  string  `json:"poster_path"`
	ReleaseDate string  `json:"release_date"`
	VoteAverage float64 `json:"vote_average"`
}

type pagedResponse struct {
	Page         int           `json:"page"`
	Results      []movieResult `json:"results"`
	TotalPages   int           `json:"total_pages"`
	TotalResults int           `json:"total_results"`
}

func (m *movieResult) toEntity() *movie.Movie {
	tmdbID := m.ID
	return &movie.Movie{
		Title:       m.Title,
		Overview:    m.Overview,
		PosterPath:  m.PosterPath,
		ReleaseDate: m.ReleaseDate,
		Rating:      m.VoteAverage,
		TMDBID:      &tmdbID,
	}
}

// NowPlaying は指定リージョンで上映中の映画一覧を取得する
func (c *Client) NowPlaying(ctx context.Context, region string, page int) ([]*movie.Movie, error) {
	if region == "" {
		region = c.defaultRegion
	}
	if !c.IsSupportedRegion(region) {
		return nil, ErrInvalidRegion
	}
	params := url.Values{}
	params.Set("region", region)
	params.Set("page", strconv.Itoa(page))
	return c.fetchMovieList(ctx, "/movie/now_playing", params)
}

// TopRated は高評価の映画一覧を取得する
func (c *Client) TopRated(ctx context.Context, page int) ([]*movie.Movie, error) {
	params := url.Values{}
	params.Set("page", strconv.Itoa(page))
	return c.fetchMovieList(ctx, "/movie/top_rated", params)
}

// GetDetails はTMDB IDから映画の詳細を取得する
func (c *Client) GetDetails(ctx context.Context, tmdbID int64) (*movie.Movie, error) {
	path := fmt.Sprintf("/movie/%d", tmdbID)
	body, err := c.get(ctx, path, url.Values{})
	if err != nil {
		return nil, err
	}
	var result movieResult
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("TMDBレスポンスの解析に失敗: %w", err)
	}
	return result.toEntity(), nil
}

func (c *Client) fetchMovieList(ctx context.Context, path string, params url.Values) ([]*movie.Movie, error) {
	body, err := c.get(ctx, path, params)
	if err != nil {
		return nil, err
	}
	var resp pagedResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("TMDBレスポンスの解析に失敗: %w", err)
	}
	movies := make([]*movie.Movie, 0, len(resp.Results))
	for i := range resp.Results {
		movies = append(movies, resp.Results[i].toEntity())
	}
	return movies, nil
}

func (c *Client) get(ctx context.Context, path string, params url.Values) ([]byte, error) {
	params.Set("api_key", c.apiKey)
	endpoint := c.baseURL + path + "?" + params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("リクエスト作成に失敗: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRequestFailed, err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusUnauthorized:
		return nil, ErrUnauthorized
	case http.StatusNotFound:
		return nil, ErrMovieNotFound
	default:
		return nil, fmt.Errorf("%w: status %d", ErrRequestFailed, resp.StatusCode)
	}

	buf, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("レスポンス読み取りに失敗: %w", err)
	}
	return buf, nil
}
