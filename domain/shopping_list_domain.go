package domain

var (
	MessageFailedDownloadShoppingList = "failed to build shopping list"
)

// ShoppingListFilename is the suggested attachment name for the rendered list.
const ShoppingListFilename = "shopping_cart.pdf"

type (
	// ShoppingListItem is one aggregated line: quantities summed across every
	// recipe in the cart, grouped by ingredient name and measurement unit.
	ShoppingListItem struct {
		Name            string `json:"name"`
		MeasurementUnit string `json:"measurement_unit"`
		TotalAmount     int    `json:"total_amount"`
	}

	ShoppingListDocument struct {
		Content     []byte
		ContentType string
		Filename    string
	}
)
