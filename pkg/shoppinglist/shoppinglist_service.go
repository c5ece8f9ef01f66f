package shoppinglist

import (
	"Foodgram-Backend/domain"
	"bytes"
	"context"
	"fmt"

	"github.com/go-pdf/fpdf"
)

type (
	ShoppingListService interface {
		BuildShoppingList(ctx context.Context, userID string) (domain.ShoppingListDocument, error)
	}

	shoppingListService struct {
		shoppingListRepository ShoppingListRepository
	}
)

func NewShoppingListService(shoppingListRepository ShoppingListRepository) ShoppingListService {
	return &shoppingListService{shoppingListRepository: shoppingListRepository}
}

// BuildShoppingList renders the user's aggregated shopping list as a one-page
// PDF. An empty cart produces a document with the title line only.
func (s *shoppingListService) BuildShoppingList(ctx context.Context, userID string) (domain.ShoppingListDocument, error) {
	items, err := s.shoppingListRepository.CollectItems(ctx, userID)
	if err != nil {
		return domain.ShoppingListDocument{}, err
	}

	content, err := renderPDF(items)
	if err != nil {
		return domain.ShoppingListDocument{}, err
	}

	return domain.ShoppingListDocument{
		Content:     content,
		ContentType: "application/pdf",
		Filename:    domain.ShoppingListFilename,
	}, nil
}

// FormatItem is the line layout used in the rendered document.
func FormatItem(item domain.ShoppingListItem) string {
	return fmt.Sprintf("%s (%s) — %d", item.Name, item.MeasurementUnit, item.TotalAmount)
}

func renderPDF(items []domain.ShoppingListItem) ([]byte, error) {
	pdf := fpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 14)
	pdf.Cell(0, 10, tr("Shopping cart:"))
	pdf.Ln(14)

	pdf.SetFont("Helvetica", "", 12)
	for _, item := range items {
		pdf.Cell(0, 6, tr(FormatItem(item)))
		pdf.Ln(6)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
