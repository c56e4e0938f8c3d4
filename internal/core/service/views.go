package service

import "github.com/modabridge/storefront/internal/core/domain"

// Typed read side. Handlers and sibling services read through these
// instead of decoding snapshots.

func (s *Store) Products() []domain.Product {
	return s.products.snapshot()
}

func (s *Store) ProductByID(id string) (domain.Product, bool) {
	return s.products.find(func(p domain.Product) bool { return p.ID == id })
}

func (s *Store) Categories() []domain.Category {
	return s.categories.snapshot()
}

func (s *Store) SubCategories() []domain.SubCategory {
	return s.subCategories.snapshot()
}

func (s *Store) CarouselSlides() []domain.CarouselSlide {
	return s.carouselSlides.snapshot()
}

func (s *Store) Enquiries() []domain.Enquiry {
	return s.enquiries.snapshot()
}

func (s *Store) AdminUsers() []domain.AdminUser {
	return s.adminUsers.snapshot()
}

func (s *Store) AdminUserByEmail(email string) (domain.AdminUser, bool) {
	return s.adminUsers.find(func(u domain.AdminUser) bool {
		return u.Email == email
	})
}

func (s *Store) Orders() []domain.Order {
	return s.orders.snapshot()
}

func (s *Store) OrdersByUser(userID string) []domain.Order {
	var out []domain.Order
	for _, o := range s.orders.snapshot() {
		if o.UserID == userID {
			out = append(out, o)
		}
	}
	return out
}

func (s *Store) Articles() []domain.Article {
	return s.articles.snapshot()
}

func (s *Store) Subscribers() []domain.Subscriber {
	return s.subscribers.snapshot()
}

func (s *Store) TrainingModules() []domain.TrainingModule {
	return s.trainingModules.snapshot()
}

func (s *Store) StatsByProduct(productID string) (domain.ProductStats, bool) {
	return s.productStats.find(func(v domain.ProductStats) bool {
		return v.ID == productID
	})
}

// Settings returns the singleton, falling back to defaults so callers
// never render on an unset record.
func (s *Store) Settings() domain.SiteSettings {
	v, ok := s.settings.find(func(v domain.SiteSettings) bool {
		return v.ID == domain.SettingsID
	})
	if !ok {
		return domain.DefaultSiteSettings()
	}
	return v
}
