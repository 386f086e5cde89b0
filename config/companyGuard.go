package config

import (
	"context"
	"strings"

	"github.com/mmdatafocus/statement_backend/appctx"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// CompanyGuardPlugin scopes queries to the request's company when the model
// has a company column.
//
// NOTE:
// - This does NOT apply to Raw SQL queries. Those must include company manually.
type CompanyGuardPlugin struct{}

func NewCompanyGuardPlugin() *CompanyGuardPlugin { return &CompanyGuardPlugin{} }

func (p *CompanyGuardPlugin) Name() string { return "company_guard" }

func (p *CompanyGuardPlugin) Initialize(db *gorm.DB) error {
	if err := db.Callback().Query().Before("gorm:query").Register("company_guard:query", companyGuardCallback); err != nil {
		return err
	}
	// Row (First/Take)
	if err := db.Callback().Row().Before("gorm:row").Register("company_guard:row", companyGuardCallback); err != nil {
		return err
	}
	return nil
}

func companyGuardCallback(db *gorm.DB) {
	if db == nil || db.Statement == nil {
		return
	}
	ctx := db.Statement.Context
	if ctx == nil {
		return
	}
	company := companyFromContext(ctx)
	if company == "" {
		return
	}
	if db.Statement.Schema == nil {
		return
	}
	if _, ok := db.Statement.Schema.FieldsByDBName["company"]; !ok {
		return
	}
	if whereHasCompany(db.Statement.Clauses["WHERE"]) {
		return
	}

	db.Statement.AddClause(clause.Where{
		Exprs: []clause.Expression{
			clause.Eq{
				Column: clause.Column{Table: db.Statement.Table, Name: "company"},
				Value:  company,
			},
		},
	})
}

func companyFromContext(ctx context.Context) string {
	if v, ok := ctx.Value(appctx.ContextKeyCompany).(string); ok && v != "" {
		return v
	}
	return ""
}

func whereHasCompany(c clause.Clause) bool {
	if c.Expression == nil {
		return false
	}
	w, ok := c.Expression.(clause.Where)
	if !ok {
		return false
	}
	for _, e := range w.Exprs {
		if exprHasCompany(e) {
			return true
		}
	}
	return false
}

func exprHasCompany(e clause.Expression) bool {
	switch v := e.(type) {
	case clause.Eq:
		return colIsCompany(v.Column)
	case clause.IN:
		return colIsCompany(v.Column)
	case clause.AndConditions:
		for _, x := range v.Exprs {
			if exprHasCompany(x) {
				return true
			}
		}
		return false
	case clause.Expr:
		// Best-effort for raw expressions.
		return strings.Contains(strings.ToLower(v.SQL), "company")
	default:
		return false
	}
}

func colIsCompany(col any) bool {
	switch c := col.(type) {
	case string:
		return strings.EqualFold(c, "company")
	case clause.Column:
		return strings.EqualFold(c.Name, "company")
	default:
		return false
	}
}
