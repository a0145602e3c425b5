package main

import (
	"github.com/gosimple/slug"
	"gorm.io/gorm/clause"

	"culturehub/internal/config"
	"culturehub/internal/database"
	"culturehub/internal/domain"
	jwtsvc "culturehub/internal/pkg/jwt"
	"culturehub/internal/pkg/logger"
)

func rate(v int64) *int64 { return &v }

func main() {
	boot := logger.New("info", false)
	cfg, err := config.Load()
	if err != nil {
		boot.Fatal().Err(err).Msg("config")
	}
	log := logger.New(cfg.LogLevel, cfg.IsProduction())

	db, err := database.Connect(cfg.DatabaseURL, log)
	if err != nil {
		log.Fatal().Err(err).Msg("DB connection failed")
	}
	if err := database.Migrate(db); err != nil {
		log.Fatal().Err(err).Msg("migrate failed")
	}

	// ================== FACILITIES ==================
	facilities := []domain.Facility{
		{Name: "Hội trường lớn", Building: "Khu A", Floor: "1", Room: "A101", Capacity: 300, BaseHourlyRate: rate(400000),
			Description: "Main hall with stage and sound system"},
		{Name: "Phòng sinh hoạt cộng đồng", Building: "Khu A", Floor: "2", Room: "A201", Capacity: 60, BaseHourlyRate: rate(150000)},
		{Name: "Phòng tập múa", Building: "Khu A", Floor: "3", Room: "A301", Capacity: 30, BaseHourlyRate: rate(120000)},
		{Name: "Sân cầu lông", Building: "Khu B", Capacity: 16},
		{Name: "Sân bóng rổ", Building: "Khu B", Capacity: 20, BaseHourlyRate: rate(80000)},
		{Name: "Phòng họp nhỏ", Building: "Khu C", Floor: "1", Room: "C102", Capacity: 12},
	}
	for i := range facilities {
		facilities[i].Slug = slug.Make(facilities[i].Name)
	}

	res := db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "name"}},
		DoUpdates: clause.AssignmentColumns([]string{"slug", "building", "floor", "room", "capacity", "base_hourly_rate", "description", "updated_at"}),
	}).Create(&facilities)
	if res.Error != nil {
		log.Fatal().Err(res.Error).Msg("seed facilities")
	}
	log.Info().Int64("rows", res.RowsAffected).Msg("facilities seeded")

	// ================== ASSETS ==================
	var hall domain.Facility
	if err := db.Where("name = ?", "Hội trường lớn").Take(&hall).Error; err != nil {
		log.Fatal().Err(err).Msg("load main hall")
	}
	var assetCount int64
	db.Model(&domain.Asset{}).Where("cultural_center_id = ?", hall.ID).Count(&assetCount)
	if assetCount == 0 {
		assets := []domain.Asset{
			{CulturalCenterID: hall.ID, Name: "Ghế nhựa", Category: "furniture", Quantity: 300, Condition: domain.AssetGood},
			{CulturalCenterID: hall.ID, Name: "Loa thùng", Category: "audio", Quantity: 4, Condition: domain.AssetGood},
			{CulturalCenterID: hall.ID, Name: "Micro không dây", Category: "audio", Quantity: 6, Condition: domain.AssetNeedsRepair,
				Note: "2 micro bị rè"},
		}
		if err := db.Create(&assets).Error; err != nil {
			log.Fatal().Err(err).Msg("seed assets")
		}
		log.Info().Int("count", len(assets)).Msg("assets seeded")
	}

	// ================== DEV TOKENS ==================
	if !cfg.IsProduction() {
		tokens := jwtsvc.New(cfg.JWTSecret, cfg.JWTTTL)
		admin, err := tokens.GenerateToken(1, "admin", "Quản trị viên")
		if err != nil {
			log.Fatal().Err(err).Msg("admin token")
		}
		staff, err := tokens.GenerateToken(10, "staff", "Nhân viên")
		if err != nil {
			log.Fatal().Err(err).Msg("staff token")
		}
		log.Info().Str("token", admin).Msg("dev admin token")
		log.Info().Str("token", staff).Msg("dev staff token")
	}

	log.Info().Msg("seeding completed")
}
