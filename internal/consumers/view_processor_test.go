package consumers

import (
	"log"
	"os"
	"testing"

	"github.com/google/uuid"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"clipaja/internal/models"
	"clipaja/internal/services"
)

var testDB *gorm.DB

func setup() {
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		log.Println("Skipping DB tests: DATABASE_URL not set")
		return
	}

	var err error
	testDB, err = gorm.Open(mysql.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		log.Printf("Failed to connect to database: %v", err)
		return
	}

	testDB.AutoMigrate(&models.Post{}, &models.PostViewHistory{}, &models.SocialAccount{})
}

func cleanup() {
	if testDB != nil {
		testDB.Exec("DELETE FROM post_view_history")
		testDB.Exec("DELETE FROM posts")
		testDB.Exec("DELETE FROM social_accounts")
	}
}

type fixedFetcher struct {
	info services.VideoInfo
}

func (f *fixedFetcher) FetchVideoInfo(accessToken, videoId string) (*services.VideoInfo, error) {
	info := f.info
	info.ID = videoId
	return &info, nil
}

func TestProcessViewRefresh(t *testing.T) {
	if testDB == nil {
		t.Skip("Database not configured")
	}
	defer cleanup()

	account := models.SocialAccount{
		ID: uuid.NewString(), UserId: "clipper-1", Platform: "tiktok",
		AccessToken: "tiktok-access-token",
	}
	testDB.Create(&account)
	post := models.Post{
		ID:               uuid.NewString(),
		ContestId:        uuid.NewString(),
		UserId:           "clipper-1",
		AccountId:        account.ID,
		Url:              "https://www.tiktok.com/@clipper/video/7300000000000000001",
		VideoId:          "7300000000000000001",
		Views:            2500,
		CalculatedAmount: 250,
		Status:           models.PostPublished,
		ClaimStatus:      models.ClaimPending,
	}
	testDB.Create(&post)

	processor := NewViewProcessor(testDB, &fixedFetcher{info: services.VideoInfo{
		ViewCount: 9000, LikeCount: 120, Comments: 14, Shares: 3,
	}})
	processor.ProcessViewRefresh(RefreshViewsDTO{PostId: post.ID})

	var reloaded models.Post
	testDB.Where("id = ?", post.ID).First(&reloaded)
	if reloaded.Views != 9000 {
		t.Errorf("Expected views refreshed to 9000, got %d", reloaded.Views)
	}
	if reloaded.LastViewCheck == nil {
		t.Errorf("Expected last view check set")
	}
	// Pricing is frozen at submission time.
	if reloaded.CalculatedAmount != 250 {
		t.Errorf("Expected amount unchanged at 250, got %f", reloaded.CalculatedAmount)
	}

	var history []models.PostViewHistory
	testDB.Where("post_id = ?", post.ID).Find(&history)
	if len(history) != 1 {
		t.Fatalf("Expected one history sample, got %d", len(history))
	}
	if history[0].Views != 9000 {
		t.Errorf("Expected history views 9000, got %d", history[0].Views)
	}
}

func TestProcessViewRefreshSkipsRejected(t *testing.T) {
	if testDB == nil {
		t.Skip("Database not configured")
	}
	defer cleanup()

	post := models.Post{
		ID:        uuid.NewString(),
		ContestId: uuid.NewString(),
		UserId:    "clipper-1",
		AccountId: uuid.NewString(),
		Url:       "https://www.tiktok.com/@clipper/video/7300000000000000002",
		VideoId:   "7300000000000000002",
		Views:     100,
		Status:    models.PostRejected,
	}
	testDB.Create(&post)

	processor := NewViewProcessor(testDB, &fixedFetcher{info: services.VideoInfo{ViewCount: 9000}})
	processor.ProcessViewRefresh(RefreshViewsDTO{PostId: post.ID})

	var count int64
	testDB.Model(&models.PostViewHistory{}).Where("post_id = ?", post.ID).Count(&count)
	if count != 0 {
		t.Errorf("Expected no history for rejected post, got %d rows", count)
	}
}

func TestMain(m *testing.M) {
	setup()
	code := m.Run()
	os.Exit(code)
}
