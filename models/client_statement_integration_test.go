package models_test

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/mmdatafocus/statement_backend/config"
	"github.com/mmdatafocus/statement_backend/middlewares"
	"github.com/mmdatafocus/statement_backend/models"
	"github.com/mmdatafocus/statement_backend/models/reports"
	"github.com/mmdatafocus/statement_backend/utils"
	"github.com/shopspring/decimal"
)

func TestClientStatementAgainstMySQL(t *testing.T) {
	if strings.TrimSpace(os.Getenv("INTEGRATION_TESTS")) == "" {
		t.Skip("set INTEGRATION_TESTS=1 to run integration tests (requires docker)")
	}

	redisName, redisPort := startRedisContainer(t)
	t.Cleanup(func() { _ = dockerRmForce(redisName) })

	mysqlName, mysqlPort := startMySQLContainer(t)
	t.Cleanup(func() { _ = dockerRmForce(mysqlName) })

	t.Setenv("REDIS_ADDRESS", fmt.Sprintf("127.0.0.1:%s", redisPort))
	t.Setenv("DB_USER", "root")
	t.Setenv("DB_PASSWORD", "testpw")
	t.Setenv("DB_HOST", "127.0.0.1")
	t.Setenv("DB_PORT", mysqlPort)
	t.Setenv("DB_NAME", "statement_test")
	t.Setenv("ENABLE_REPORT_CACHE", "true")

	config.ConnectDatabaseWithRetry()
	config.ConnectRedisWithRetry()
	models.MigrateTable()

	seedStatementFixtures(t)

	ctx := utils.SetCompanyInContext(context.Background(), "Acme")
	ctx = middlewares.WithLoaders(ctx, middlewares.NewLoaders(config.GetDB()))

	filters := &models.StatementFilters{
		Company:    "Acme",
		FromDate:   day("2024-02-01"),
		ToDate:     day("2024-03-31"),
		PartyType:  models.PartyTypeCustomer,
		Party:      []string{"Smile"},
		GroupBy:    models.StatementGroupByParty,
		AgeingDate: day("2024-03-31"),
	}

	postings, err := models.GetGlEntries(ctx, filters)
	if err != nil {
		t.Fatalf("GetGlEntries: %v", err)
	}
	// party filter keeps earlier postings for the opening balance;
	// later and cancelled postings are excluded
	if len(postings) != 3 {
		t.Fatalf("postings expected 3, got %d", len(postings))
	}

	for attempt := 1; attempt <= 2; attempt++ {
		report, err := reports.GetClientStatementReport(ctx, filters, middlewares.StatementLookups())
		if err != nil {
			t.Fatalf("GetClientStatementReport (attempt %d): %v", attempt, err)
		}
		assertSeededStatement(t, report)
	}

	// unknown party is a validation error
	bad := *filters
	bad.Party = []string{"Nobody"}
	if _, err := reports.GetClientStatementReport(ctx, &bad, middlewares.StatementLookups()); !utils.IsValidationError(err) {
		t.Fatalf("unknown party expected validation error, got %v", err)
	}
}

func assertSeededStatement(t *testing.T, report *reports.ClientStatementReport) {
	t.Helper()

	if report.Header.CustomerName != "Smile" {
		t.Fatalf("CustomerName expected Smile, got %s", report.Header.CustomerName)
	}
	if report.Header.CustomerDetails == nil || report.Header.CustomerDetails.AddressLine1 != "1 Pagoda Road" {
		t.Fatalf("CustomerDetails expected billing address, got %+v", report.Header.CustomerDetails)
	}
	if report.AccountCurrency != "MMK" {
		t.Fatalf("AccountCurrency expected MMK, got %s", report.AccountCurrency)
	}

	// grand opening, blank, group opening, 2 entries, group total, group closing, blank, grand total, grand closing
	if len(report.Rows) != 10 {
		t.Fatalf("rows expected 10, got %d", len(report.Rows))
	}
	last := report.Rows[len(report.Rows)-1]
	if last.Kind != reports.StatementRowClosing || !last.Balance.Equal(decimal.NewFromInt(110)) {
		t.Fatalf("closing balance expected 110, got %s (%s)", last.Balance, last.Kind)
	}

	payment := report.Rows[4]
	if payment.VoucherNo != "PAY-1" {
		t.Fatalf("row 4 expected PAY-1, got %s", payment.VoucherNo)
	}
	if payment.BillNo != "B-77" {
		t.Fatalf("PAY-1 bill no expected B-77, got %q", payment.BillNo)
	}
	if !payment.Balance.Equal(decimal.NewFromInt(110)) {
		t.Fatalf("PAY-1 balance expected 110, got %s", payment.Balance)
	}

	cases := []struct {
		name string
		got  decimal.Decimal
		want int64
	}{
		{"Current", report.Header.Current, -40},
		{"Days30", report.Header.Days30, 100},
		{"Days60", report.Header.Days60, 50},
		{"Days90", report.Header.Days90, 0},
	}
	for _, tc := range cases {
		if !tc.got.Equal(decimal.NewFromInt(tc.want)) {
			t.Fatalf("%s expected %d, got %s", tc.name, tc.want, tc.got)
		}
	}
}

func seedStatementFixtures(t *testing.T) {
	t.Helper()
	db := config.GetDB()
	if db == nil {
		t.Fatalf("db is nil after ConnectDatabaseWithRetry")
	}

	records := []interface{}{
		&models.Company{Name: "Acme", DefaultCurrency: "MMK"},
		&models.Account{Company: "Acme", Name: "Debtors", Lft: 1, Rgt: 2, IsGroup: utils.NewFalse(), AccountCurrency: "MMK"},
		&models.Customer{Company: "Acme", Name: "Smile", CustomerName: "Smile Trading", DefaultCurrency: "MMK"},
		&models.Address{Company: "Acme", Name: "Smile-Billing", AddressLine1: "1 Pagoda Road", City: "Yangon", Phone: "09 420 123 456"},
		&models.Address{Company: "Acme", Name: "Smile-Shipping", AddressLine1: "9 Harbour Street", City: "Yangon", IsShippingAddress: true},
		&models.DynamicLink{Parent: "Smile-Billing", ParentType: "Address", LinkDoctype: "Customer", LinkName: "Smile"},
		&models.DynamicLink{Parent: "Smile-Shipping", ParentType: "Address", LinkDoctype: "Customer", LinkName: "Smile"},
		&models.PurchaseInvoice{Company: "Acme", Name: "PINV-1", Supplier: "Unicorp", BillNo: "B-77", PostingDate: day("2024-03-01"), Docstatus: models.DocStatusSubmitted},
	}
	for _, r := range records {
		if err := db.Create(r).Error; err != nil {
			t.Fatalf("seed %T: %v", r, err)
		}
	}

	entries := []*models.GlEntry{
		glEntry("GLE-1", "2024-01-15", "Sales Invoice", "SINV-0", 50, 0),
		glEntry("GLE-2", "2024-02-10", "Sales Invoice", "SINV-1", 100, 0),
		glEntry("GLE-3", "2024-03-20", "Payment Entry", "PAY-1", 0, 40),
		glEntry("GLE-4", "2024-04-05", "Sales Invoice", "SINV-2", 999, 0),
		glEntry("GLE-5", "2024-02-11", "Sales Invoice", "SINV-X", 7, 0),
	}
	entries[2].AgainstVoucherType = "Purchase Invoice"
	entries[2].AgainstVoucher = "PINV-1"
	entries[4].IsCancelled = true
	if err := db.Create(&entries).Error; err != nil {
		t.Fatalf("seed gl entries: %v", err)
	}
}

func glEntry(name, date, voucherType, voucherNo string, debit, credit int64) *models.GlEntry {
	return &models.GlEntry{
		Name:                    name,
		Company:                 "Acme",
		PostingDate:             day(date),
		Account:                 "Debtors",
		PartyType:               models.PartyTypeCustomer,
		Party:                   "Smile",
		VoucherType:             voucherType,
		VoucherNo:               voucherNo,
		AccountCurrency:         "MMK",
		IsOpening:               models.IsOpeningNo,
		Debit:                   decimal.NewFromInt(debit),
		Credit:                  decimal.NewFromInt(credit),
		DebitInAccountCurrency:  decimal.NewFromInt(debit),
		CreditInAccountCurrency: decimal.NewFromInt(credit),
	}
}

func day(s string) time.Time {
	t, err := utils.ParseDate(s)
	if err != nil {
		panic(err)
	}
	return t
}

func startRedisContainer(t *testing.T) (containerName, hostPort string) {
	t.Helper()
	name := fmt.Sprintf("statement-test-redis-%d", time.Now().UnixNano())
	out, err := dockerRun(
		"run", "-d", "--name", name,
		"-p", "127.0.0.1:0:6379",
		"redis:7-alpine",
	)
	if err != nil {
		t.Fatalf("start redis container: %v\n%s", err, out)
	}
	port, err := dockerHostPort(name, "6379/tcp")
	if err != nil {
		t.Fatalf("redis docker port: %v", err)
	}
	deadline := time.Now().Add(60 * time.Second)
	for time.Now().Before(deadline) {
		if _, err := dockerRun("exec", name, "redis-cli", "ping"); err == nil {
			return name, port
		}
		time.Sleep(250 * time.Millisecond)
	}
	t.Fatalf("redis did not become ready")
	return "", ""
}

func startMySQLContainer(t *testing.T) (containerName, hostPort string) {
	t.Helper()
	name := fmt.Sprintf("statement-test-mysql-%d", time.Now().UnixNano())
	out, err := dockerRun(
		"run", "-d", "--name", name,
		"-e", "MYSQL_ROOT_PASSWORD=testpw",
		"-e", "MYSQL_DATABASE=statement_test",
		"-p", "127.0.0.1:0:3306",
		"mysql:8.0",
		"--default-authentication-plugin=mysql_native_password",
	)
	if err != nil {
		t.Fatalf("start mysql container: %v\n%s", err, out)
	}
	port, err := dockerHostPort(name, "3306/tcp")
	if err != nil {
		t.Fatalf("mysql docker port: %v", err)
	}
	deadline := time.Now().Add(120 * time.Second)
	for time.Now().Before(deadline) {
		if _, err := dockerRun("exec", name, "mysqladmin", "ping", "-h", "127.0.0.1", "-ptestpw", "--silent"); err == nil {
			return name, port
		}
		time.Sleep(500 * time.Millisecond)
	}
	t.Fatalf("mysql did not become ready")
	return "", ""
}

// dockerHostPort parses "127.0.0.1:49154" from docker port output.
func dockerHostPort(container, portProto string) (string, error) {
	out, err := dockerRun("port", container, portProto)
	if err != nil {
		return "", fmt.Errorf("docker port: %w: %s", err, out)
	}
	re := regexp.MustCompile(`:(\d+)`)
	m := re.FindStringSubmatch(out)
	if len(m) != 2 {
		return "", fmt.Errorf("unexpected docker port output: %q", out)
	}
	return m[1], nil
}

func dockerRmForce(container string) error {
	if strings.TrimSpace(container) == "" {
		return nil
	}
	_, err := dockerRun("rm", "-f", container)
	return err
}

func dockerRun(args ...string) (string, error) {
	cmd := exec.Command("docker", args...)
	b, err := cmd.CombinedOutput()
	return string(b), err
}
