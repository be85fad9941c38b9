package repository

import (
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// dialectOf 数据库方言名称，未知时按 sqlite 处理
func dialectOf(db *gorm.DB) string {
	if db == nil || db.Dialector == nil {
		return "sqlite"
	}
	if name := strings.ToLower(strings.TrimSpace(db.Dialector.Name())); name != "" {
		return name
	}
	return "sqlite"
}

// columnRef 把 "table.column" 拆成可被方言正确引用的列
func columnRef(ref string) clause.Column {
	if table, name, ok := strings.Cut(ref, "."); ok {
		return clause.Column{Table: table, Name: name}
	}
	return clause.Column{Name: ref}
}

// containsAny 任一列忽略大小写包含 keyword；keyword 中的 % 与 _ 按字面匹配
func containsAny(db *gorm.DB, keyword string, columns ...string) clause.Expression {
	dialect := dialectOf(db)
	exprs := make([]clause.Expression, 0, len(columns))
	for _, column := range columns {
		exprs = append(exprs, containsExpr(dialect, column, keyword))
	}
	if len(exprs) == 1 {
		return exprs[0]
	}
	return clause.Or(exprs...)
}

func containsExpr(dialect, column, keyword string) clause.Expr {
	pattern := "%" + likeEscaper.Replace(keyword) + "%"
	if dialect == "postgres" || dialect == "postgresql" {
		return clause.Expr{SQL: `? ILIKE ? ESCAPE '\'`, Vars: []interface{}{columnRef(column), pattern}}
	}
	// sqlite 的 LIKE 仅对 ASCII 忽略大小写，统一转小写比较
	return clause.Expr{SQL: `LOWER(?) LIKE ? ESCAPE '\'`, Vars: []interface{}{columnRef(column), strings.ToLower(pattern)}}
}

// equalFold 忽略大小写的等值匹配
func equalFold(column, value string) clause.Expr {
	return clause.Expr{SQL: "LOWER(?) = LOWER(?)", Vars: []interface{}{columnRef(column), value}}
}
