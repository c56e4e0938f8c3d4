package domain

// Collection is the logical table name shared by the remote gateway,
// the local persistence keys and the in-memory store.
type Collection string

const (
	CollectionProducts        Collection = "products"
	CollectionCategories      Collection = "categories"
	CollectionSubCategories   Collection = "subcategories"
	CollectionCarouselSlides  Collection = "carousel_slides"
	CollectionEnquiries       Collection = "enquiries"
	CollectionAdminUsers      Collection = "admin_users"
	CollectionProductStats    Collection = "product_stats"
	CollectionOrders          Collection = "orders"
	CollectionArticles        Collection = "articles"
	CollectionSubscribers     Collection = "subscribers"
	CollectionTrainingModules Collection = "training_modules"
	CollectionSettings        Collection = "settings"
)

// Collections lists every collection the store synchronizes.
func Collections() []Collection {
	return []Collection{
		CollectionProducts,
		CollectionCategories,
		CollectionSubCategories,
		CollectionCarouselSlides,
		CollectionEnquiries,
		CollectionAdminUsers,
		CollectionProductStats,
		CollectionOrders,
		CollectionArticles,
		CollectionSubscribers,
		CollectionTrainingModules,
		CollectionSettings,
	}
}

// LocalKey returns the persistence key a collection is mirrored under.
// The "admin_" prefix matches the key layout the storefront has always
// used for its locally persisted collections.
func (c Collection) LocalKey() string {
	return "admin_" + string(c)
}

func (c Collection) String() string {
	return string(c)
}

// Record is any entity held in a synchronized collection.
type Record interface {
	RecordID() string
}
