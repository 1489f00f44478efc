// Package immich reads photo metadata from an Immich server's HTTP API
// and can materialize accepted trips as albums.
package immich

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/ekarhu/tripsight/internal/models"
)

const pageSize = 1000

type Client struct {
	baseURL string
	apiKey  string
	client  *http.Client
}

func NewClient(baseURL, apiKey string) *Client {
	return &Client{
		baseURL: baseURL,
		apiKey:  apiKey,
		client:  &http.Client{Timeout: 30 * time.Second},
	}
}

// FetchPhotos retrieves all photos taken within the range, paging through
// the metadata search endpoint. The result is a snapshot: each record
// carries the photo's id, local timestamp, EXIF coordinate when present
// and the EXIF country string when Immich resolved one.
func (c *Client) FetchPhotos(ctx context.Context, r models.TimeRange) ([]models.PhotoRecord, error) {
	endpoint := fmt.Sprintf("%s/api/search/metadata", c.baseURL)

	var records []models.PhotoRecord
	page := 1

	for {
		requestBody := map[string]interface{}{
			"takenAfter":  r.Start.Format(time.RFC3339),
			"takenBefore": r.End.Format(time.RFC3339),
			"page":        page,
			"size":        pageSize,
			"withExif":    true,
		}

		jsonBody, err := json.Marshal(requestBody)
		if err != nil {
			return nil, err
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewBuffer(jsonBody))
		if err != nil {
			return nil, err
		}
		c.setHeaders(req)

		resp, err := c.client.Do(req)
		if err != nil {
			return nil, err
		}

		if resp.StatusCode != http.StatusOK {
			body, _ := io.ReadAll(resp.Body)
			resp.Body.Close()
			return nil, fmt.Errorf("metadata search failed with status %d: %s", resp.StatusCode, string(body))
		}

		var response struct {
			Assets struct {
				Items []assetResponse `json:"items"`
			} `json:"assets"`
		}

		if err := json.NewDecoder(resp.Body).Decode(&response); err != nil {
			resp.Body.Close()
			return nil, fmt.Errorf("failed to decode response: %w", err)
		}
		resp.Body.Close()

		for _, item := range response.Assets.Items {
			records = append(records, parsePhoto(item))
		}

		if len(response.Assets.Items) < pageSize {
			break
		}
		page++
	}

	return records, nil
}

type assetResponse struct {
	ID            string    `json:"id"`
	Type          string    `json:"type"`
	LocalDateTime time.Time `json:"localDateTime"`
	ExifInfo      *struct {
		Latitude  *float64 `json:"latitude"`
		Longitude *float64 `json:"longitude"`
		City      string   `json:"city"`
		Country   string   `json:"country"`
	} `json:"exifInfo"`
}

func parsePhoto(resp assetResponse) models.PhotoRecord {
	record := models.PhotoRecord{
		ID:        resp.ID,
		Timestamp: resp.LocalDateTime,
	}

	if resp.ExifInfo != nil {
		if resp.ExifInfo.Latitude != nil && resp.ExifInfo.Longitude != nil {
			record.Coordinate = &models.Coordinate{
				Latitude:  *resp.ExifInfo.Latitude,
				Longitude: *resp.ExifInfo.Longitude,
			}
		}
		record.Country = resp.ExifInfo.Country
	}

	return record
}

// CreateAlbum creates a new album and returns its id.
func (c *Client) CreateAlbum(ctx context.Context, name string, description string) (string, error) {
	endpoint := fmt.Sprintf("%s/api/albums", c.baseURL)

	requestBody := map[string]interface{}{
		"albumName":   name,
		"description": description,
	}

	jsonBody, err := json.Marshal(requestBody)
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewBuffer(jsonBody))
	if err != nil {
		return "", err
	}
	c.setHeaders(req)

	resp, err := c.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		body, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("failed to create album with status %d: %s", resp.StatusCode, string(body))
	}

	var response struct {
		ID string `json:"id"`
	}

	if err := json.NewDecoder(resp.Body).Decode(&response); err != nil {
		return "", fmt.Errorf("failed to decode response: %w", err)
	}

	return response.ID, nil
}

// AddAssetsToAlbum adds the given photos to an album.
func (c *Client) AddAssetsToAlbum(ctx context.Context, albumID string, assetIDs []string) error {
	endpoint := fmt.Sprintf("%s/api/albums/%s/assets", c.baseURL, albumID)

	requestBody := map[string]interface{}{
		"ids": assetIDs,
	}

	jsonBody, err := json.Marshal(requestBody)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPut, endpoint, bytes.NewBuffer(jsonBody))
	if err != nil {
		return err
	}
	c.setHeaders(req)

	resp, err := c.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("failed to add assets to album with status %d: %s", resp.StatusCode, string(body))
	}

	return nil
}

func (c *Client) setHeaders(req *http.Request) {
	req.Header.Set("x-api-key", c.apiKey)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
}
