// dayreport prints a day's orders as a terminal table, for kitchen printouts
// and end-of-day reconciliation.
//
//	dayreport -date 2024-03-15T00:00:00Z
//
// Without -date it reports on the current UTC day from midnight.
package main

import (
	"flag"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/olekukonko/tablewriter"
	"github.com/sirupsen/logrus"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	orderControllers "github.com/matthews-code/yummybitest3/controllers/order"
	"github.com/matthews-code/yummybitest3/models"
)

func main() {
	dateFlag := flag.String("date", "", "day start instant, RFC3339 (default: today 00:00 UTC)")
	flag.Parse()

	_ = godotenv.Load()

	day := time.Now().UTC().Truncate(24 * time.Hour)
	if *dateFlag != "" {
		parsed, err := time.Parse(time.RFC3339, *dateFlag)
		if err != nil {
			logrus.WithError(err).Fatal("invalid -date, want RFC3339")
		}
		day = parsed
	}

	db := openDatabase()

	orders, err := orderControllers.ListOrdersForDay(db, day)
	if err != nil {
		logrus.WithError(err).Fatal("failed to fetch orders")
	}

	var customers []models.Customer
	if err := db.Find(&customers).Error; err != nil {
		logrus.WithError(err).Fatal("failed to fetch customers")
	}
	names := make(map[string]string, len(customers))
	for _, customer := range customers {
		name := customer.FirstName
		if customer.LastName != nil {
			name += " " + *customer.LastName
		}
		names[customer.CustomerUID] = name
	}

	fmt.Printf("Orders for %s (%d total)\n", day.Format("Mon Jan 2 2006"), len(orders))

	table := tablewriter.NewTable(os.Stdout)
	table.Header("Time", "Customer", "Amount Due", "Payment", "Delivery", "Paid", "Collected", "Note")

	total := 0.0
	for _, order := range orders {
		name := names[order.CustomerUID]
		if name == "" {
			name = order.CustomerUID
		}
		_ = table.Append([]string{
			order.Date.Format("15:04"),
			name,
			strconv.FormatFloat(order.AmountDue, 'f', 2, 64),
			string(order.PaymentMode),
			string(order.DeliveryMode),
			yesNo(order.Paid),
			yesNo(order.Collected),
			order.Note,
		})
		total += order.AmountDue
	}

	if err := table.Render(); err != nil {
		logrus.WithError(err).Fatal("failed to render table")
	}
	fmt.Printf("Total due: %.2f\n", total)
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}

func openDatabase() *gorm.DB {
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		dsn = fmt.Sprintf(
			"host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
			os.Getenv("DB_HOST"), os.Getenv("DB_USER"), os.Getenv("DB_PASSWORD"),
			os.Getenv("DB_NAME"), os.Getenv("DB_PORT"),
		)
	}
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		logrus.WithError(err).Fatal("db connection failed")
	}
	return db
}
