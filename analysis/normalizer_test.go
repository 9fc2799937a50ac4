package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"analyzer/models"
)

func validRow() models.RawRow {
	return models.RawRow{
		"Date":               "2024-03-01",
		"Supplier":           "Acme",
		"Product":            "Widget",
		"Order_Quantity":     "100",
		"Delivery_Time_Days": "3.5",
		"Inventory_Level":    "500",
		"Order_Value":        "1250.50",
		"Status":             "Delivered",
	}
}

func TestNormalizeValidRow(t *testing.T) {
	orders, rejections, err := Normalize([]models.RawRow{validRow()})
	require.NoError(t, err)
	require.Len(t, orders, 1)
	assert.Empty(t, rejections)

	o := orders[0]
	assert.Equal(t, "Acme", o.Supplier)
	assert.Equal(t, "Widget", o.Product)
	assert.Equal(t, 100, o.OrderQuantity)
	assert.Equal(t, 3.5, o.DeliveryTimeDays)
	assert.Equal(t, models.StatusDelivered, o.Status)
	assert.Equal(t, 2024, o.Date.Year())
}

func TestNormalizeRejectsBadRows(t *testing.T) {
	badDate := validRow()
	badDate["Date"] = "not-a-date"

	negative := validRow()
	negative["Order_Value"] = "-5"

	badStatus := validRow()
	badStatus["Status"] = "Lost"

	missing := validRow()
	missing["Supplier"] = ""

	rows := []models.RawRow{validRow(), badDate, negative, badStatus, missing}
	orders, rejections, err := Normalize(rows)
	require.NoError(t, err)

	assert.Len(t, orders, 1)
	assert.Len(t, rejections, 4)

	// Conservation: valid + rejected == total.
	assert.Equal(t, len(rows), len(orders)+len(rejections))

	assert.Contains(t, rejections[0].Reason, "unparseable date")
	assert.Contains(t, rejections[1].Reason, "negative Order_Value")
	assert.Contains(t, rejections[2].Reason, "unknown status")
	assert.Contains(t, rejections[3].Reason, "missing value for Supplier")
	assert.Equal(t, 2, rejections[0].Line)
}

func TestNormalizeStatusTolerance(t *testing.T) {
	row := validRow()
	row["Status"] = "in transit"
	orders, _, err := Normalize([]models.RawRow{row})
	require.NoError(t, err)
	assert.Equal(t, models.StatusInTransit, orders[0].Status)
}

func TestNormalizeMissingColumnIsFatal(t *testing.T) {
	row := validRow()
	delete(row, "Status")

	_, _, err := Normalize([]models.RawRow{row})
	require.Error(t, err)

	var valErr *ValidationError
	require.ErrorAs(t, err, &valErr)
	assert.Contains(t, valErr.Reason, "Status")
}

func TestNormalizeAllRowsRejectedIsFatal(t *testing.T) {
	bad := validRow()
	bad["Date"] = "garbage"

	_, rejections, err := Normalize([]models.RawRow{bad, bad})
	var valErr *ValidationError
	require.ErrorAs(t, err, &valErr)
	assert.Len(t, rejections, 2)
}

func TestNormalizeEmptyInputIsFatal(t *testing.T) {
	_, _, err := Normalize(nil)
	var valErr *ValidationError
	require.ErrorAs(t, err, &valErr)
}
