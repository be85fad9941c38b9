package commands

import (
	"errors"
	"fmt"

	"github.com/elisiyan/internal/constants"
	"github.com/elisiyan/internal/models"

	"github.com/spf13/cobra"
	"gorm.io/gorm"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Insert the default category and demo catalog data",
	Long: `Insert the default category, a small category tree and demo clothing items.
Existing rows are matched by name and left untouched, so the command can be re-run.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := models.AutoMigrate(); err != nil {
			return fmt.Errorf("migrate database: %w", err)
		}
		if err := models.EnsureDefaultCategory(models.DB, cfg.Catalog.DefaultCategoryID, cfg.Catalog.DefaultCategoryName); err != nil {
			return fmt.Errorf("ensure default category: %w", err)
		}
		result, err := seedCatalog(models.DB)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "seeded %d categories and %d items\n", result.Categories, result.Items)
		return nil
	},
}

type seedCategory struct {
	Name   string
	Parent string
}

type seedItem struct {
	Name        string
	Description string
	Price       string
	Popularity  int
	Category    string
	Size        models.ClothingSize
	Color       models.ClothingColor
}

type seedResult struct {
	Categories int
	Items      int
}

// 父分类必须排在子分类之前
var demoCategories = []seedCategory{
	{Name: "Men"},
	{Name: "Women"},
	{Name: "Men Tops", Parent: "Men"},
	{Name: "Men Outerwear", Parent: "Men"},
	{Name: "Women Dresses", Parent: "Women"},
	{Name: "Accessories"},
}

var demoItems = []seedItem{
	{Name: "Oxford Shirt", Description: "Slim fit cotton oxford shirt", Price: "39.90", Popularity: 120, Category: "Men Tops", Size: constants.SizeM, Color: constants.ColorWhite},
	{Name: "Crew Neck Tee", Description: "Heavyweight jersey tee", Price: "14.50", Popularity: 310, Category: "Men Tops", Size: constants.SizeL, Color: constants.ColorBlack},
	{Name: "Field Jacket", Description: "Water resistant field jacket", Price: "129.00", Popularity: 75, Category: "Men Outerwear", Size: constants.SizeXL, Color: constants.ColorGreen},
	{Name: "Wrap Dress", Description: "Midi wrap dress in viscose", Price: "69.00", Popularity: 205, Category: "Women Dresses", Size: constants.SizeS, Color: constants.ColorRed},
	{Name: "Linen Sundress", Description: "Relaxed linen sundress", Price: "54.00", Popularity: 140, Category: "Women Dresses", Size: constants.SizeM, Color: constants.ColorYellow},
	{Name: "Knit Scarf", Description: "Merino wool scarf", Price: "24.00", Popularity: 60, Category: "Accessories", Size: constants.SizeM, Color: constants.ColorBlue},
}

func seedCatalog(db *gorm.DB) (seedResult, error) {
	var result seedResult
	err := db.Transaction(func(tx *gorm.DB) error {
		ids := make(map[string]uint, len(demoCategories))
		for _, entry := range demoCategories {
			var category models.Category
			err := tx.Where("name = ?", entry.Name).First(&category).Error
			if err == nil {
				ids[entry.Name] = category.ID
				continue
			}
			if !errors.Is(err, gorm.ErrRecordNotFound) {
				return err
			}
			category = models.Category{Name: entry.Name}
			if entry.Parent != "" {
				parentID, ok := ids[entry.Parent]
				if !ok {
					return fmt.Errorf("seed category %s: parent %s not seeded", entry.Name, entry.Parent)
				}
				category.ParentID = &parentID
			}
			if err := tx.Create(&category).Error; err != nil {
				return fmt.Errorf("seed category %s: %w", entry.Name, err)
			}
			ids[entry.Name] = category.ID
			result.Categories++
		}

		for _, entry := range demoItems {
			var count int64
			if err := tx.Model(&models.ClothingItem{}).Where("name = ?", entry.Name).Count(&count).Error; err != nil {
				return err
			}
			if count > 0 {
				continue
			}
			price, err := models.ParseMoney(entry.Price)
			if err != nil {
				return fmt.Errorf("seed item %s: %w", entry.Name, err)
			}
			item := models.ClothingItem{
				Name:        entry.Name,
				Description: entry.Description,
				Price:       price,
				Popularity:  entry.Popularity,
				CategoryID:  ids[entry.Category],
				Size:        entry.Size,
				Color:       entry.Color,
			}
			if err := tx.Create(&item).Error; err != nil {
				return fmt.Errorf("seed item %s: %w", entry.Name, err)
			}
			result.Items++
		}
		return nil
	})
	return result, err
}
