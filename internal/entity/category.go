package entity

type Topic struct {
	ID         string     `json:"topic_id"`
	Title      string     `json:"title"`
	Categories []Category `json:"categories,omitempty"`
}

// Category groups posts under a topic. BasePrice is the default
// consultation price applied when a consultation moves into this
// category.
type Category struct {
	ID           string `json:"category_id"`
	TopicID      string `json:"topic_id"`
	CategoryName string `json:"category_name"`
	BasePrice    int    `json:"base_price"`
}
