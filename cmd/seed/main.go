package main

import (
	"fmt"

	"lingora/internal/model"
	"lingora/pkg/config"
	"lingora/pkg/database"
	"lingora/pkg/logger"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	log := logger.New()
	db, err := database.NewPostgresDB(cfg)
	if err != nil {
		log.Error("Failed to connect to database: %v", err)
		panic(err)
	}

	if err := seedDatabase(db, log); err != nil {
		log.Error("Failed to seed database: %v", err)
		panic(err)
	}

	log.Info("Database seeded successfully!")
}

func seedDatabase(db *gorm.DB, log *logger.Logger) error {
	if err := seedCountries(db, log); err != nil {
		return err
	}
	if err := seedTopics(db, log); err != nil {
		return err
	}
	if err := seedWords(db, log); err != nil {
		return err
	}
	return seedAdmin(db, log)
}

func seedCountries(db *gorm.DB, log *logger.Logger) error {
	var count int64
	if err := db.Model(&model.CountryModel{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		log.Info("Countries already seeded, skipping")
		return nil
	}

	countries := []model.CountryModel{
		{CountryCode: "KR", CountryName: "South Korea", FlagIcon: "https://flagcdn.com/kr.svg"},
		{CountryCode: "US", CountryName: "United States", FlagIcon: "https://flagcdn.com/us.svg"},
		{CountryCode: "JP", CountryName: "Japan", FlagIcon: "https://flagcdn.com/jp.svg"},
		{CountryCode: "CN", CountryName: "China", FlagIcon: "https://flagcdn.com/cn.svg"},
		{CountryCode: "FR", CountryName: "France", FlagIcon: "https://flagcdn.com/fr.svg"},
		{CountryCode: "DE", CountryName: "Germany", FlagIcon: "https://flagcdn.com/de.svg"},
		{CountryCode: "ES", CountryName: "Spain", FlagIcon: "https://flagcdn.com/es.svg"},
		{CountryCode: "BR", CountryName: "Brazil", FlagIcon: "https://flagcdn.com/br.svg"},
		{CountryCode: "VN", CountryName: "Vietnam", FlagIcon: "https://flagcdn.com/vn.svg"},
		{CountryCode: "TH", CountryName: "Thailand", FlagIcon: "https://flagcdn.com/th.svg"},
	}
	if err := db.Create(&countries).Error; err != nil {
		return err
	}
	log.Info("Seeded %d countries", len(countries))
	return nil
}

func seedTopics(db *gorm.DB, log *logger.Logger) error {
	var count int64
	if err := db.Model(&model.TopicModel{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		log.Info("Topics already seeded, skipping")
		return nil
	}

	topics := []struct {
		title      string
		categories []model.CategoryModel
	}{
		{
			title: "Grammar",
			categories: []model.CategoryModel{
				{CategoryName: "Basic Grammar", BasePrice: 10},
				{CategoryName: "Advanced Grammar", BasePrice: 20},
			},
		},
		{
			title: "Conversation",
			categories: []model.CategoryModel{
				{CategoryName: "Daily Conversation", BasePrice: 15},
				{CategoryName: "Business Conversation", BasePrice: 30},
			},
		},
		{
			title: "Writing",
			categories: []model.CategoryModel{
				{CategoryName: "Essay Review", BasePrice: 25},
				{CategoryName: "Resume Review", BasePrice: 40},
			},
		},
	}

	for _, t := range topics {
		topic := model.TopicModel{Title: t.title}
		if err := db.Create(&topic).Error; err != nil {
			return err
		}
		for i := range t.categories {
			t.categories[i].TopicID = topic.ID
		}
		if err := db.Create(&t.categories).Error; err != nil {
			return err
		}
	}
	log.Info("Seeded %d topics", len(topics))
	return nil
}

func seedWords(db *gorm.DB, log *logger.Logger) error {
	var count int64
	if err := db.Model(&model.WordModel{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		log.Info("Wordlist already seeded, skipping")
		return nil
	}

	words := []model.WordModel{
		{Word: "serendipity", PartOfSpeech: "noun"},
		{Word: "resilient", PartOfSpeech: "adjective"},
		{Word: "endeavor", PartOfSpeech: "verb"},
		{Word: "meticulous", PartOfSpeech: "adjective"},
		{Word: "paradigm", PartOfSpeech: "noun"},
		{Word: "articulate", PartOfSpeech: "verb"},
		{Word: "pragmatic", PartOfSpeech: "adjective"},
		{Word: "ubiquitous", PartOfSpeech: "adjective"},
		{Word: "ambiguous", PartOfSpeech: "adjective"},
		{Word: "collaborate", PartOfSpeech: "verb"},
		{Word: "consensus", PartOfSpeech: "noun"},
		{Word: "deliberate", PartOfSpeech: "adjective"},
	}
	if err := db.Create(&words).Error; err != nil {
		return err
	}
	log.Info("Seeded %d words", len(words))
	return nil
}

func seedAdmin(db *gorm.DB, log *logger.Logger) error {
	var count int64
	if err := db.Model(&model.UserModel{}).Where("role = ?", "ADMIN").Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		log.Info("Admin user exists, skipping")
		return nil
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte("admin12345"), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	admin := model.UserModel{
		Email:    "admin@lingora.io",
		Username: "admin",
		Password: string(hashed),
		Role:     "ADMIN",
		Points:   1000,
	}
	if err := db.Create(&admin).Error; err != nil {
		return err
	}
	log.Info("Seeded admin user %s", admin.Email)
	return nil
}
