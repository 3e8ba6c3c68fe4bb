package devserver

import (
	"fmt"

	"github.com/ananyakrishnan/zaika/pkg/logger"
)

// seed fills an empty menu so a fresh database is immediately browsable.
// Re-running against a populated database is a no-op.
func (s *Server) seed() error {
	var count int64
	if err := s.repo.db.Model(&Food{}).Count(&count).Error; err != nil {
		return fmt.Errorf("seed: count foods: %w", err)
	}
	if count > 0 {
		return nil
	}

	menu := []Food{
		{Name: "Paneer Tikka", Price: 180, Category: "starters", Image: "/images/paneer-tikka.jpg"},
		{Name: "Veg Spring Rolls", Price: 120, Category: "starters", Image: "/images/spring-rolls.jpg"},
		{Name: "Chicken 65", Price: 220, Category: "starters", Image: "/images/chicken-65.jpg"},
		{Name: "Masala Dosa", Price: 90, Category: "south indian", Image: "/images/masala-dosa.jpg"},
		{Name: "Idli Sambar", Price: 60, Category: "south indian", Image: "/images/idli-sambar.jpg"},
		{Name: "Paneer Butter Masala", Price: 240, Category: "main course", Image: "/images/paneer-butter-masala.jpg"},
		{Name: "Dal Makhani", Price: 190, Category: "main course", Image: "/images/dal-makhani.jpg"},
		{Name: "Chicken Biryani", Price: 280, Category: "main course", Image: "/images/chicken-biryani.jpg"},
		{Name: "Butter Naan", Price: 40, Category: "breads", Image: "/images/butter-naan.jpg"},
		{Name: "Garlic Naan", Price: 50, Category: "breads", Image: "/images/garlic-naan.jpg"},
		{Name: "Gulab Jamun", Price: 80, Category: "desserts", Image: "/images/gulab-jamun.jpg"},
		{Name: "Rasmalai", Price: 100, Category: "desserts", Image: "/images/rasmalai.jpg"},
		{Name: "Masala Chai", Price: 30, Category: "beverages", Image: "/images/masala-chai.jpg"},
		{Name: "Mango Lassi", Price: 70, Category: "beverages", Image: "/images/mango-lassi.jpg"},
	}

	if err := s.repo.db.Create(&menu).Error; err != nil {
		return fmt.Errorf("seed: create foods: %w", err)
	}
	invalidateMenu()

	logger.Info("devserver: menu seeded", "items", len(menu))
	return nil
}
