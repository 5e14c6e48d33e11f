package services

import (
	"fmt"
	"testing"

	"github.com/google/uuid"

	"clipaja/internal/models"
)

type stubFetcher struct {
	info *VideoInfo
	err  error
}

func (f *stubFetcher) FetchVideoInfo(accessToken, videoId string) (*VideoInfo, error) {
	if f.err != nil {
		return nil, f.err
	}
	info := *f.info
	info.ID = videoId
	return &info, nil
}

func newPostService(views int64) (*PostService, *stubFetcher) {
	fetcher := &stubFetcher{info: &VideoInfo{
		Title:     "my clip",
		ViewCount: views,
		LikeCount: 10,
	}}
	return &PostService{DB: testDB, Fetcher: fetcher, ReviewGate: "skip"}, fetcher
}

func seedTikTokAccount(t *testing.T, userId string) models.SocialAccount {
	t.Helper()
	account := models.SocialAccount{
		ID:          uuid.NewString(),
		UserId:      userId,
		Platform:    "tiktok",
		Username:    "clipper",
		AccessToken: "tiktok-access-token",
	}
	if err := testDB.Create(&account).Error; err != nil {
		t.Fatalf("failed to seed social account: %v", err)
	}
	return account
}

func TestCalculatePostAmount(t *testing.T) {
	cases := []struct {
		views      int64
		payPerView float64
		want       float64
	}{
		{2500, 100, 250},
		{999, 1, 0},
		{1500, 150, 225},
		{0, 100, 0},
		{1000, 100, 100},
		{1999, 100, 199},
	}
	for _, c := range cases {
		if got := CalculatePostAmount(c.views, c.payPerView); got != c.want {
			t.Errorf("CalculatePostAmount(%d, %f) = %f, want %f", c.views, c.payPerView, got, c.want)
		}
	}
}

func TestSubmitPostPublishes(t *testing.T) {
	if testDB == nil {
		t.Skip("Database not configured")
	}
	defer cleanup()

	svc, _ := newPostService(2500)
	contest := seedContest(t, "owner-1", models.ContestActive, 100, 150000)
	account := seedTikTokAccount(t, "clipper-1")

	res := svc.Submit("clipper-1", SubmitPostDTO{
		ContestId: contest.ID,
		AccountId: account.ID,
		Url:       "https://www.tiktok.com/@clipper/video/7300000000000000001",
	})
	if res.Code != 201 {
		t.Fatalf("Expected 201, got %d (%s)", res.Code, res.Message)
	}

	post := res.Data.(models.Post)
	if post.Status != models.PostPublished {
		t.Errorf("Expected published, got %s", post.Status)
	}
	if post.AccountId != account.ID {
		t.Errorf("Expected submitting account recorded, got %s", post.AccountId)
	}
	if post.PublishedAt == nil {
		t.Errorf("Expected published_at set on direct publish")
	}
	if post.ClaimStatus != models.ClaimPending {
		t.Errorf("Expected claim pending, got %s", post.ClaimStatus)
	}
	if post.VideoId != "7300000000000000001" {
		t.Errorf("Unexpected video id %s", post.VideoId)
	}
	if post.CalculatedAmount != 250 {
		t.Errorf("Expected amount 250 for 2500 views at 100/1000, got %f", post.CalculatedAmount)
	}
	if post.LastViewCheck == nil {
		t.Errorf("Expected last view check set at submission")
	}
}

func TestSubmitManualGateHoldsForReview(t *testing.T) {
	if testDB == nil {
		t.Skip("Database not configured")
	}
	defer cleanup()

	svc, _ := newPostService(2500)
	svc.ReviewGate = "manual"
	contest := seedContest(t, "owner-1", models.ContestActive, 100, 150000)
	account := seedTikTokAccount(t, "clipper-1")

	res := svc.Submit("clipper-1", SubmitPostDTO{
		ContestId: contest.ID,
		AccountId: account.ID,
		Url:       "https://www.tiktok.com/@clipper/video/7300000000000000001",
	})
	if res.Code != 201 {
		t.Fatalf("Expected 201, got %d", res.Code)
	}
	post := res.Data.(models.Post)
	if post.Status != models.PostSubmitted {
		t.Errorf("Expected submitted under manual gate, got %s", post.Status)
	}
	if post.PublishedAt != nil {
		t.Errorf("Expected published_at unset until published")
	}
}

func TestSubmitRejectsNonTikTokURL(t *testing.T) {
	if testDB == nil {
		t.Skip("Database not configured")
	}
	defer cleanup()

	svc, _ := newPostService(2500)
	contest := seedContest(t, "owner-1", models.ContestActive, 100, 150000)

	res := svc.Submit("clipper-1", SubmitPostDTO{
		ContestId: contest.ID,
		Url:       "https://www.youtube.com/watch?v=abc",
	})
	if res.Code != 400 {
		t.Errorf("Expected 400 for non-TikTok url, got %d", res.Code)
	}

	res = svc.Submit("clipper-1", SubmitPostDTO{
		ContestId: contest.ID,
		Url:       "https://vt.tiktok.com/ZS8abc/",
	})
	if res.Code != 400 {
		t.Errorf("Expected 400 for short link without video id, got %d", res.Code)
	}
}

func TestSubmitRequiresActiveContest(t *testing.T) {
	if testDB == nil {
		t.Skip("Database not configured")
	}
	defer cleanup()

	svc, _ := newPostService(2500)
	contest := seedContest(t, "owner-1", models.ContestDraft, 100, 150000)
	account := seedTikTokAccount(t, "clipper-1")

	res := svc.Submit("clipper-1", SubmitPostDTO{
		ContestId: contest.ID,
		AccountId: account.ID,
		Url:       "https://www.tiktok.com/@clipper/video/7300000000000000001",
	})
	if res.Code != 400 {
		t.Errorf("Expected 400 for draft contest, got %d", res.Code)
	}
}

func TestSubmitRequiresOwnLinkedAccount(t *testing.T) {
	if testDB == nil {
		t.Skip("Database not configured")
	}
	defer cleanup()

	svc, _ := newPostService(2500)
	contest := seedContest(t, "owner-1", models.ContestActive, 100, 150000)

	// Unknown account id.
	res := svc.Submit("clipper-1", SubmitPostDTO{
		ContestId: contest.ID,
		AccountId: uuid.NewString(),
		Url:       "https://www.tiktok.com/@clipper/video/7300000000000000001",
	})
	if res.Code != 404 {
		t.Errorf("Expected 404 for unknown account, got %d", res.Code)
	}

	// Another user's linked account.
	foreign := seedTikTokAccount(t, "clipper-9")
	res = svc.Submit("clipper-1", SubmitPostDTO{
		ContestId: contest.ID,
		AccountId: foreign.ID,
		Url:       "https://www.tiktok.com/@clipper/video/7300000000000000001",
	})
	if res.Code != 404 {
		t.Errorf("Expected 404 for someone else's account, got %d", res.Code)
	}

	var count int64
	testDB.Model(&models.Post{}).Where("contest_id = ?", contest.ID).Count(&count)
	if count != 0 {
		t.Errorf("Expected no post created, got %d", count)
	}
}

func TestSubmitDuplicateURLConflicts(t *testing.T) {
	if testDB == nil {
		t.Skip("Database not configured")
	}
	defer cleanup()

	svc, _ := newPostService(2500)
	contest := seedContest(t, "owner-1", models.ContestActive, 100, 150000)
	first := seedTikTokAccount(t, "clipper-1")
	second := seedTikTokAccount(t, "clipper-2")

	url := "https://www.tiktok.com/@clipper/video/7300000000000000001"
	if res := svc.Submit("clipper-1", SubmitPostDTO{ContestId: contest.ID, AccountId: first.ID, Url: url}); res.Code != 201 {
		t.Fatalf("Expected first submit to succeed, got %d", res.Code)
	}

	// Same video, different clipper, same contest.
	if res := svc.Submit("clipper-2", SubmitPostDTO{ContestId: contest.ID, AccountId: second.ID, Url: url}); res.Code != 409 {
		t.Errorf("Expected 409 for duplicate url, got %d", res.Code)
	}

	// Same url is fine on a different contest.
	other := seedContest(t, "owner-1", models.ContestActive, 50, 100000)
	if res := svc.Submit("clipper-2", SubmitPostDTO{ContestId: other.ID, AccountId: second.ID, Url: url}); res.Code != 201 {
		t.Errorf("Expected 201 on another contest, got %d (%s)", res.Code, res.Message)
	}
}

func TestReviewApproveIncrementsPayout(t *testing.T) {
	if testDB == nil {
		t.Skip("Database not configured")
	}
	defer cleanup()

	svc, _ := newPostService(2500)
	contest := seedContest(t, "owner-1", models.ContestActive, 100, 150000)
	account := seedTikTokAccount(t, "clipper-1")

	sub := svc.Submit("clipper-1", SubmitPostDTO{
		ContestId: contest.ID,
		AccountId: account.ID,
		Url:       "https://www.tiktok.com/@clipper/video/7300000000000000001",
	})
	post := sub.Data.(models.Post)

	res := svc.Review("owner-1", ReviewPostDTO{PostId: post.ID, Action: "approve"})
	if res.Code != 200 {
		t.Fatalf("Expected 200, got %d (%s)", res.Code, res.Message)
	}

	approved := res.Data.(models.Post)
	if approved.Status != models.PostApproved {
		t.Errorf("Expected approved, got %s", approved.Status)
	}
	if approved.ApprovedAt == nil {
		t.Errorf("Expected approved_at set")
	}

	var reloaded models.Contest
	testDB.Where("id = ?", contest.ID).First(&reloaded)
	if reloaded.CurrentPayout != 250 {
		t.Errorf("Expected current payout 250, got %f", reloaded.CurrentPayout)
	}

	// Second approval of the same post must not double-charge the budget.
	if res := svc.Review("owner-1", ReviewPostDTO{PostId: post.ID, Action: "approve"}); res.Code != 400 {
		t.Errorf("Expected 400 re-approving, got %d", res.Code)
	}
	testDB.Where("id = ?", contest.ID).First(&reloaded)
	if reloaded.CurrentPayout != 250 {
		t.Errorf("Expected payout unchanged at 250, got %f", reloaded.CurrentPayout)
	}
}

func TestReviewApproveRespectsMaxPayout(t *testing.T) {
	if testDB == nil {
		t.Skip("Database not configured")
	}
	defer cleanup()

	// 100k views at 100 per 1000 prices the post at 10000, over the 6000 cap.
	svc, _ := newPostService(100000)
	contest := seedContest(t, "owner-1", models.ContestActive, 100, 6000)
	account := seedTikTokAccount(t, "clipper-1")

	sub := svc.Submit("clipper-1", SubmitPostDTO{
		ContestId: contest.ID,
		AccountId: account.ID,
		Url:       "https://www.tiktok.com/@clipper/video/7300000000000000001",
	})
	post := sub.Data.(models.Post)

	res := svc.Review("owner-1", ReviewPostDTO{PostId: post.ID, Action: "approve"})
	if res.Code != 400 {
		t.Fatalf("Expected 400 over budget, got %d", res.Code)
	}

	var reloadedPost models.Post
	testDB.Where("id = ?", post.ID).First(&reloadedPost)
	if reloadedPost.Status != models.PostPublished {
		t.Errorf("Expected post left reviewable, got %s", reloadedPost.Status)
	}

	var reloadedContest models.Contest
	testDB.Where("id = ?", contest.ID).First(&reloadedContest)
	if reloadedContest.CurrentPayout != 0 {
		t.Errorf("Expected budget untouched, got %f", reloadedContest.CurrentPayout)
	}
}

func TestReviewRejectDefaultsReason(t *testing.T) {
	if testDB == nil {
		t.Skip("Database not configured")
	}
	defer cleanup()

	svc, _ := newPostService(2500)
	contest := seedContest(t, "owner-1", models.ContestActive, 100, 150000)
	account := seedTikTokAccount(t, "clipper-1")

	sub := svc.Submit("clipper-1", SubmitPostDTO{
		ContestId: contest.ID,
		AccountId: account.ID,
		Url:       "https://www.tiktok.com/@clipper/video/7300000000000000001",
	})
	post := sub.Data.(models.Post)

	res := svc.Review("owner-1", ReviewPostDTO{PostId: post.ID, Action: "reject"})
	if res.Code != 200 {
		t.Fatalf("Expected 200, got %d", res.Code)
	}

	rejected := res.Data.(models.Post)
	if rejected.Status != models.PostRejected {
		t.Errorf("Expected rejected, got %s", rejected.Status)
	}
	if rejected.RejectionReason != "No reason provided" {
		t.Errorf("Expected default reason, got %q", rejected.RejectionReason)
	}

	var reloadedContest models.Contest
	testDB.Where("id = ?", contest.ID).First(&reloadedContest)
	if reloadedContest.CurrentPayout != 0 {
		t.Errorf("Rejection must not touch the budget, got %f", reloadedContest.CurrentPayout)
	}
}

func TestReviewRequiresOwner(t *testing.T) {
	if testDB == nil {
		t.Skip("Database not configured")
	}
	defer cleanup()

	svc, _ := newPostService(2500)
	contest := seedContest(t, "owner-1", models.ContestActive, 100, 150000)
	account := seedTikTokAccount(t, "clipper-1")

	sub := svc.Submit("clipper-1", SubmitPostDTO{
		ContestId: contest.ID,
		AccountId: account.ID,
		Url:       "https://www.tiktok.com/@clipper/video/7300000000000000001",
	})
	post := sub.Data.(models.Post)

	if res := svc.Review("clipper-1", ReviewPostDTO{PostId: post.ID, Action: "approve"}); res.Code != 403 {
		t.Errorf("Expected 403 for non-owner, got %d", res.Code)
	}
	if res := svc.Review("owner-1", ReviewPostDTO{PostId: post.ID, Action: "publish"}); res.Code != 400 {
		t.Errorf("Expected 400 for unknown action, got %d", res.Code)
	}
}

func TestListForReviewReportsRemainingPayout(t *testing.T) {
	if testDB == nil {
		t.Skip("Database not configured")
	}
	defer cleanup()

	svc, _ := newPostService(2500)
	contest := seedContest(t, "owner-1", models.ContestActive, 100, 150000)
	testDB.Model(&models.Contest{}).Where("id = ?", contest.ID).Update("current_payout", 40000)
	account := seedTikTokAccount(t, "clipper-1")

	for i := 0; i < 3; i++ {
		svc.Submit("clipper-1", SubmitPostDTO{
			ContestId: contest.ID,
			AccountId: account.ID,
			Url:       fmt.Sprintf("https://www.tiktok.com/@clipper/video/730000000000000000%d", i),
		})
	}

	if res := svc.ListForReview(contest.ID, "clipper-1"); res.Code != 403 {
		t.Errorf("Expected 403 for non-owner, got %d", res.Code)
	}

	res := svc.ListForReview(contest.ID, "owner-1")
	if res.Code != 200 {
		t.Fatalf("Expected 200, got %d", res.Code)
	}

	data := res.Data.(map[string]interface{})
	if remaining := data["remainingPayout"].(float64); remaining != 110000 {
		t.Errorf("Expected remaining 110000, got %f", remaining)
	}
	if posts := data["posts"].([]models.Post); len(posts) != 3 {
		t.Errorf("Expected 3 reviewable posts, got %d", len(posts))
	}
}
