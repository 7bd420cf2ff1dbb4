package course

// Course is an offered class with enrollment and pricing.
type Course struct {
	ID       string  `json:"id"`
	Title    string  `json:"title"`
	Category string  `json:"category,omitempty"`
	Status   string  `json:"status"` // draft, published, archived
	Price    float64 `json:"price"`
	Students int     `json:"students"`
	Rating   float64 `json:"rating,omitempty"`
}

func (c Course) RecordID() string { return c.ID }

// Revenue is the course's earned amount: price times enrolled students.
func (c Course) Revenue() float64 {
	return c.Price * float64(c.Students)
}
