package domain

import "time"

type (
	Product struct {
		ID             string            `json:"id"`
		Name           string            `json:"name"`
		SKU            string            `json:"sku"`
		Price          float64           `json:"price"`
		AffiliateLink  string            `json:"affiliateLink"`
		CategoryID     string            `json:"categoryId"`
		SubCategoryID  string            `json:"subCategoryId"`
		Description    string            `json:"description"`
		Features       []string          `json:"features"`
		Specifications map[string]string `json:"specifications"`
		Media          []MediaFile       `json:"media"`
		DiscountRules  []DiscountRule    `json:"discountRules"`
		Reviews        []Review          `json:"reviews"`
		StockQuantity  int               `json:"stockQuantity"`
		CreatedAt      time.Time         `json:"createdAt"`
	}

	MediaFile struct {
		URL  string `json:"url"`
		Type string `json:"type"`
		Alt  string `json:"alt"`
	}

	DiscountRule struct {
		ID       string    `json:"id"`
		Type     string    `json:"type"`
		Value    float64   `json:"value"`
		StartsAt time.Time `json:"startsAt"`
		EndsAt   time.Time `json:"endsAt"`
	}

	Review struct {
		ID        string    `json:"id"`
		Author    string    `json:"author"`
		Rating    int       `json:"rating"`
		Comment   string    `json:"comment"`
		CreatedAt time.Time `json:"createdAt"`
	}
)

func (p Product) RecordID() string { return p.ID }

type Category struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Icon        string `json:"icon"`
	Image       string `json:"image"`
	Description string `json:"description"`
}

func (c Category) RecordID() string { return c.ID }

type SubCategory struct {
	ID         string `json:"id"`
	CategoryID string `json:"categoryId"`
	Name       string `json:"name"`
}

func (s SubCategory) RecordID() string { return s.ID }

type CarouselSlide struct {
	ID       string `json:"id"`
	Image    string `json:"image"`
	Type     string `json:"type"`
	Title    string `json:"title"`
	Subtitle string `json:"subtitle"`
	CTA      string `json:"cta"`
}

func (s CarouselSlide) RecordID() string { return s.ID }
