package seed

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
)

const dateLayout = "2006-01-02"

// WriteCSVs writes the dataset as the three source CSVs the ingest
// command consumes, with the upstream column headers.
func (ds Dataset) WriteCSVs(dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}
	if err := ds.writeDemographics(filepath.Join(dir, "hh_demographic.csv")); err != nil {
		return err
	}
	if err := ds.writeProducts(filepath.Join(dir, "product.csv")); err != nil {
		return err
	}
	return ds.writeTransactions(filepath.Join(dir, "transaction_data.csv"))
}

func (ds Dataset) writeDemographics(path string) error {
	records := [][]string{{
		"household_key", "AGE_DESC", "MARITAL_STATUS_CODE", "INCOME_DESC",
		"HOMEOWNER_DESC", "HH_COMP_DESC", "HOUSEHOLD_SIZE_DESC", "KID_CATEGORY_DESC",
	}}
	for _, h := range ds.Households {
		records = append(records, []string{
			strconv.Itoa(h.Key), h.AgeBracket, h.MaritalCode, h.IncomeBracket,
			h.Homeowner, h.Composition, h.Size, h.KidCategory,
		})
	}
	return writeCSV(path, records)
}

func (ds Dataset) writeProducts(path string) error {
	records := [][]string{{
		"PRODUCT_ID", "MANUFACTURER", "DEPARTMENT", "BRAND",
		"COMMODITY_DESC", "SUB_COMMODITY_DESC", "CURR_SIZE_OF_PRODUCT",
	}}
	for _, p := range ds.Products {
		records = append(records, []string{
			strconv.Itoa(p.ID), strconv.Itoa(p.Manufacturer), p.Department, p.Brand,
			p.Commodity, p.SubCommodity, p.Size,
		})
	}
	return writeCSV(path, records)
}

func (ds Dataset) writeTransactions(path string) error {
	records := [][]string{{
		"HOUSEHOLD_KEY", "BASKET_ID", "DAY", "PRODUCT_ID", "QUANTITY",
		"SALES_VALUE", "STORE_ID", "RETAIL_DISC", "TRANS_TIME", "WEEK_NO",
	}}
	for _, t := range ds.Transactions {
		records = append(records, []string{
			strconv.Itoa(t.HouseholdKey),
			strconv.FormatInt(t.BasketID, 10),
			t.Day.Format(dateLayout),
			strconv.Itoa(t.ProductID),
			strconv.Itoa(t.Quantity),
			strconv.FormatFloat(t.SalesValue, 'f', 2, 64),
			strconv.Itoa(t.StoreID),
			strconv.FormatFloat(t.RetailDisc, 'f', 2, 64),
			strconv.Itoa(t.TransTime),
			strconv.Itoa(t.WeekNo),
		})
	}
	return writeCSV(path, records)
}

func writeCSV(path string, records [][]string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.WriteAll(records); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}
