package analysis

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"analyzer/models"
)

// Required input columns, exactly as documented for the CSV contract.
const (
	ColDate      = "Date"
	ColSupplier  = "Supplier"
	ColProduct   = "Product"
	ColQuantity  = "Order_Quantity"
	ColDelivery  = "Delivery_Time_Days"
	ColInventory = "Inventory_Level"
	ColValue     = "Order_Value"
	ColStatus    = "Status"
)

// RequiredColumns lists every column a row must carry, in documented order.
var RequiredColumns = []string{
	ColDate, ColSupplier, ColProduct, ColQuantity,
	ColDelivery, ColInventory, ColValue, ColStatus,
}

var dateLayouts = []string{
	"2006-01-02",
	time.RFC3339,
	"2006-01-02 15:04:05",
	"01/02/2006",
}

// Normalize validates raw rows into Orders. Individual bad rows are
// rejected with a reason and do not abort the run; the error return is
// non-nil only for fatal conditions (a required column missing from the
// schema, or zero valid rows remaining).
func Normalize(rows []models.RawRow) ([]models.Order, []models.Rejection, error) {
	if len(rows) == 0 {
		return nil, nil, &ValidationError{Reason: "input contains no rows"}
	}

	// Schema check against the first row: the loader gives every row the
	// same key set, so a column missing here is missing everywhere.
	for _, col := range RequiredColumns {
		if _, ok := rows[0][col]; !ok {
			return nil, nil, &ValidationError{Reason: fmt.Sprintf("required column %q is missing", col)}
		}
	}

	orders := make([]models.Order, 0, len(rows))
	rejections := make([]models.Rejection, 0)

	for i, row := range rows {
		order, reason := normalizeRow(row)
		if reason != "" {
			rejections = append(rejections, models.Rejection{Line: i + 1, Reason: reason})
			continue
		}
		orders = append(orders, order)
	}

	if len(orders) == 0 {
		return nil, rejections, &ValidationError{Reason: "no valid rows remain after validation"}
	}
	return orders, rejections, nil
}

func normalizeRow(row models.RawRow) (models.Order, string) {
	var order models.Order

	for _, col := range RequiredColumns {
		if strings.TrimSpace(row[col]) == "" {
			return order, fmt.Sprintf("missing value for %s", col)
		}
	}

	date, err := parseDate(strings.TrimSpace(row[ColDate]))
	if err != nil {
		return order, fmt.Sprintf("unparseable date %q", row[ColDate])
	}

	quantity, err := strconv.Atoi(strings.TrimSpace(row[ColQuantity]))
	if err != nil {
		return order, fmt.Sprintf("invalid %s %q", ColQuantity, row[ColQuantity])
	}
	if quantity < 0 {
		return order, fmt.Sprintf("negative %s", ColQuantity)
	}

	delivery, reason := parseNonNegative(row, ColDelivery)
	if reason != "" {
		return order, reason
	}
	inventory, reason := parseNonNegative(row, ColInventory)
	if reason != "" {
		return order, reason
	}
	value, reason := parseNonNegative(row, ColValue)
	if reason != "" {
		return order, reason
	}

	status, ok := parseStatus(row[ColStatus])
	if !ok {
		return order, fmt.Sprintf("unknown status %q", row[ColStatus])
	}

	order = models.Order{
		Date:             date,
		Supplier:         strings.TrimSpace(row[ColSupplier]),
		Product:          strings.TrimSpace(row[ColProduct]),
		OrderQuantity:    quantity,
		DeliveryTimeDays: delivery,
		InventoryLevel:   inventory,
		OrderValue:       value,
		Status:           status,
	}
	return order, ""
}

func parseDate(raw string) (time.Time, error) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("no layout matched %q", raw)
}

func parseNonNegative(row models.RawRow, col string) (float64, string) {
	v, err := strconv.ParseFloat(strings.TrimSpace(row[col]), 64)
	if err != nil {
		return 0, fmt.Sprintf("invalid %s %q", col, row[col])
	}
	if v < 0 {
		return 0, fmt.Sprintf("negative %s", col)
	}
	return v, ""
}

// parseStatus accepts the documented enum values, tolerating case and a
// space in place of the underscore. Anything else rejects the row.
func parseStatus(raw string) (models.Status, bool) {
	normalized := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(raw)), " ", "_")
	switch normalized {
	case "delivered":
		return models.StatusDelivered, true
	case "in_transit":
		return models.StatusInTransit, true
	case "delayed":
		return models.StatusDelayed, true
	}
	return "", false
}
