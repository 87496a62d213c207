package ingest

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/kyohashi/idpos-visualizer/internal/errs"
)

const dateLayout = "2006-01-02"

// Product carries the two product attributes denormalised onto fact rows.
type Product struct {
	Commodity  string
	Department string
}

// FactRow is one line item of the sales fact table.
type FactRow struct {
	TxnDate     time.Time
	BasketID    int64
	HouseholdID int64
	SalesValue  float64
	Commodity   string
	Department  string
}

// DemographicRow is one household of the demographic dimension.
type DemographicRow struct {
	HouseholdID   int64
	AgeBracket    string
	IncomeBracket string
}

// ReadProducts parses the product CSV into a lookup keyed by product ID.
func ReadProducts(r io.Reader) (map[int64]Product, error) {
	cr := csv.NewReader(r)
	header, err := headerIndex(cr)
	if err != nil {
		return nil, err
	}
	cols, err := requireColumns(header, "PRODUCT_ID", "COMMODITY_DESC", "DEPARTMENT")
	if err != nil {
		return nil, err
	}

	products := make(map[int64]Product)
	for {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, errs.NewValidationError("malformed product CSV: " + err.Error())
		}
		id, err := strconv.ParseInt(record[cols[0]], 10, 64)
		if err != nil {
			return nil, errs.NewValidationError("product CSV: PRODUCT_ID is not an integer: " + record[cols[0]])
		}
		products[id] = Product{
			Commodity:  record[cols[1]],
			Department: record[cols[2]],
		}
	}
	return products, nil
}

// ReadTransactions parses the transaction CSV into fact rows, joining
// product category and department at load time. Rows referencing an
// unknown product are skipped and counted rather than failing the load.
func ReadTransactions(r io.Reader, products map[int64]Product) (rows []FactRow, skipped int, err error) {
	cr := csv.NewReader(r)
	header, err := headerIndex(cr)
	if err != nil {
		return nil, 0, err
	}
	cols, err := requireColumns(header, "HOUSEHOLD_KEY", "BASKET_ID", "DAY", "PRODUCT_ID", "SALES_VALUE")
	if err != nil {
		return nil, 0, err
	}

	for {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, 0, errs.NewValidationError("malformed transaction CSV: " + err.Error())
		}

		householdID, err := strconv.ParseInt(record[cols[0]], 10, 64)
		if err != nil {
			return nil, 0, errs.NewValidationError("transaction CSV: HOUSEHOLD_KEY is not an integer: " + record[cols[0]])
		}
		basketID, err := strconv.ParseInt(record[cols[1]], 10, 64)
		if err != nil {
			return nil, 0, errs.NewValidationError("transaction CSV: BASKET_ID is not an integer: " + record[cols[1]])
		}
		txnDate, err := time.Parse(dateLayout, record[cols[2]])
		if err != nil {
			return nil, 0, errs.NewValidationError("transaction CSV: DAY is not a YYYY-MM-DD date: " + record[cols[2]])
		}
		productID, err := strconv.ParseInt(record[cols[3]], 10, 64)
		if err != nil {
			return nil, 0, errs.NewValidationError("transaction CSV: PRODUCT_ID is not an integer: " + record[cols[3]])
		}
		salesValue, err := strconv.ParseFloat(record[cols[4]], 64)
		if err != nil {
			return nil, 0, errs.NewValidationError("transaction CSV: SALES_VALUE is not a number: " + record[cols[4]])
		}

		product, ok := products[productID]
		if !ok {
			skipped++
			continue
		}
		rows = append(rows, FactRow{
			TxnDate:     txnDate,
			BasketID:    basketID,
			HouseholdID: householdID,
			SalesValue:  salesValue,
			Commodity:   product.Commodity,
			Department:  product.Department,
		})
	}
	return rows, skipped, nil
}

// ReadDemographics parses the household demographic CSV.
func ReadDemographics(r io.Reader) ([]DemographicRow, error) {
	cr := csv.NewReader(r)
	header, err := headerIndex(cr)
	if err != nil {
		return nil, err
	}
	cols, err := requireColumns(header, "household_key", "AGE_DESC", "INCOME_DESC")
	if err != nil {
		return nil, err
	}

	var rows []DemographicRow
	for {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, errs.NewValidationError("malformed demographic CSV: " + err.Error())
		}
		householdID, err := strconv.ParseInt(record[cols[0]], 10, 64)
		if err != nil {
			return nil, errs.NewValidationError("demographic CSV: household_key is not an integer: " + record[cols[0]])
		}
		rows = append(rows, DemographicRow{
			HouseholdID:   householdID,
			AgeBracket:    record[cols[1]],
			IncomeBracket: record[cols[2]],
		})
	}
	return rows, nil
}

func headerIndex(cr *csv.Reader) (map[string]int, error) {
	header, err := cr.Read()
	if err != nil {
		return nil, errs.NewValidationError("CSV has no header row")
	}
	idx := make(map[string]int, len(header))
	for i, name := range header {
		idx[name] = i
	}
	return idx, nil
}

func requireColumns(header map[string]int, names ...string) ([]int, error) {
	cols := make([]int, len(names))
	for i, name := range names {
		pos, ok := header[name]
		if !ok {
			return nil, errs.NewValidationError(fmt.Sprintf("CSV is missing required column %q", name))
		}
		cols[i] = pos
	}
	return cols, nil
}
