package services

import (
	"fmt"
	"regexp"
	"strings"

	"clipaja/pkg/common"
)

var videoIDPattern = regexp.MustCompile(`/video/(\d+)`)

// VideoFetcher pulls public metrics for a TikTok video using the submitting
// user's OAuth token.
type VideoFetcher interface {
	FetchVideoInfo(accessToken, videoId string) (*VideoInfo, error)
}

type VideoInfo struct {
	ID        string
	Title     string
	ViewCount int64
	LikeCount int64
	Comments  int64
	Shares    int64
}

type TikTokService struct {
	BaseUrl string
}

func NewTikTokService() *TikTokService {
	return &TikTokService{BaseUrl: "https://open.tiktokapis.com"}
}

// IsTikTokURL reports whether the submitted link points at TikTok at all.
// Exact video resolution happens in ExtractVideoID.
func IsTikTokURL(url string) bool {
	return strings.Contains(url, "tiktok.com")
}

// ExtractVideoID pulls the numeric video id out of a canonical TikTok url.
// Short-link formats (vt.tiktok.com) carry no id and return empty.
func ExtractVideoID(url string) string {
	m := videoIDPattern.FindStringSubmatch(url)
	if len(m) < 2 {
		return ""
	}
	return m[1]
}

// FetchVideoInfo queries the TikTok video API for one video's metrics.
func (s *TikTokService) FetchVideoInfo(accessToken, videoId string) (*VideoInfo, error) {
	payload := map[string]interface{}{
		"filters": map[string]interface{}{
			"video_ids": []string{videoId},
		},
	}

	headers := map[string]string{
		"Authorization": "Bearer " + accessToken,
		"Content-Type":  "application/json",
	}

	url := fmt.Sprintf("%s/v2/video/query/?fields=id,title,view_count,like_count,comment_count,share_count", s.BaseUrl)
	resp, err := common.Post(url, payload, headers)
	if err != nil {
		return nil, fmt.Errorf("tiktok query failed: %w", err)
	}

	respMap, ok := resp.(map[string]interface{})
	if !ok {
		return nil, fmt.Errorf("invalid tiktok response")
	}

	dataMap, _ := respMap["data"].(map[string]interface{})
	videos, _ := dataMap["videos"].([]interface{})
	if len(videos) == 0 {
		return nil, fmt.Errorf("video %s not found or not accessible", videoId)
	}

	videoMap, ok := videos[0].(map[string]interface{})
	if !ok {
		return nil, fmt.Errorf("invalid tiktok video entry")
	}

	info := &VideoInfo{ID: videoId}
	info.Title, _ = videoMap["title"].(string)
	if v, ok := videoMap["view_count"].(float64); ok {
		info.ViewCount = int64(v)
	}
	if v, ok := videoMap["like_count"].(float64); ok {
		info.LikeCount = int64(v)
	}
	if v, ok := videoMap["comment_count"].(float64); ok {
		info.Comments = int64(v)
	}
	if v, ok := videoMap["share_count"].(float64); ok {
		info.Shares = int64(v)
	}

	return info, nil
}
