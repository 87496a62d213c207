package query

import (
	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres"
)

var pg = goqu.Dialect("postgres")

var (
	// Tables
	factTable = goqu.T("sales_fact")
	demoTable = goqu.T("household_demographics")

	// Columns: sales_fact
	// Always referenced with the full table qualifier so the rendered
	// predicate fragment is identical across every query in a cycle,
	// including the joined demographic query.
	fact_txnDate     = goqu.I("sales_fact.txn_date")
	fact_basketId    = goqu.I("sales_fact.basket_id")
	fact_householdId = goqu.I("sales_fact.household_id")
	fact_salesValue  = goqu.I("sales_fact.sales_value")
	fact_commodity   = goqu.I("sales_fact.commodity")
	fact_department  = goqu.I("sales_fact.department")

	// Columns: household_demographics
	demo_householdId   = goqu.I("household_demographics.household_id")
	demo_ageBracket    = goqu.I("household_demographics.age_bracket")
	demo_incomeBracket = goqu.I("household_demographics.income_bracket")
)
