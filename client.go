// client.go

package sqlfront

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/jinzhu/inflection"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/sqlfront-engine/sqlfront/engine/ast"
	"github.com/sqlfront-engine/sqlfront/engine/render"
)

// ============================================
// CLIENT STRUCT
// ============================================

// Client wraps a database connection and deploys built table definitions on
// it, standing in for the downstream catalog consumer.
type Client struct {
	sqlDB   *sql.DB
	mongoDB *mongo.Database
	redisDB *redis.Client
	dbType  string
	ctx     context.Context
}

// ============================================
// CONSTRUCTORS
// ============================================

// WrapSQL wraps a SQL database connection (PostgreSQL or MySQL)
func WrapSQL(db *sql.DB, dbType string) *Client {
	if dbType != "PostgreSQL" && dbType != "MySQL" {
		dbType = "PostgreSQL"
	}
	return &Client{
		sqlDB:  db,
		dbType: dbType,
		ctx:    context.Background(),
	}
}

// WrapMongo wraps a MongoDB database connection
func WrapMongo(db *mongo.Database) *Client {
	return &Client{
		mongoDB: db,
		dbType:  "MongoDB",
		ctx:     context.Background(),
	}
}

// WrapRedis wraps a Redis client connection
func WrapRedis(rdb *redis.Client) *Client {
	return &Client{
		redisDB: rdb,
		dbType:  "Redis",
		ctx:     context.Background(),
	}
}

// SetContext sets the context for database operations
func (c *Client) SetContext(ctx context.Context) {
	c.ctx = ctx
}

// ============================================
// APPLY
// ============================================

// Apply parses the DDL statement, builds its AST, and deploys the resulting
// definition on the wrapped store.
func (c *Client) Apply(input string) error {
	stmt, err := Parse(input)
	if err != nil {
		return err
	}

	ct, ok := stmt.(*ast.CreateTable)
	if !ok {
		return fmt.Errorf("cannot apply statement type %T", stmt)
	}

	switch c.dbType {
	case "PostgreSQL", "MySQL":
		return c.applySQL(ct)
	case "MongoDB":
		return c.applyMongo(ct)
	case "Redis":
		return c.applyRedis(ct)
	default:
		return fmt.Errorf("unsupported database type: %s", c.dbType)
	}
}

// ============================================
// SQL IMPLEMENTATION (PostgreSQL, MySQL)
// ============================================

func (c *Client) applySQL(ct *ast.CreateTable) error {
	ddl, err := render.SQL(ct, c.dbType)
	if err != nil {
		return fmt.Errorf("render error: %w", err)
	}

	if _, err := c.sqlDB.ExecContext(c.ctx, ddl); err != nil {
		return fmt.Errorf("exec error: %w", err)
	}
	return nil
}

// ============================================
// MONGODB IMPLEMENTATION
// ============================================

func (c *Client) applyMongo(ct *ast.CreateTable) error {
	name := ct.Name.Name

	if ct.IfNotExists {
		existing, err := c.mongoDB.ListCollectionNames(c.ctx, bson.M{"name": name})
		if err != nil {
			return fmt.Errorf("list collections error: %w", err)
		}
		if len(existing) > 0 {
			return nil
		}
	}

	if err := c.mongoDB.CreateCollection(c.ctx, name); err != nil {
		return fmt.Errorf("create collection error: %w", err)
	}

	// Column layout goes into a registry document so catalog consumers can
	// look the schema up by table or entity name.
	columns := make([]bson.M, 0, len(ct.Columns))
	for _, col := range ct.Columns {
		columns = append(columns, bson.M{
			"name":     col.Name.Name,
			"type":     col.Type.Tag.String(),
			"nullable": col.Nullability == ast.Nullable,
		})
	}
	doc := bson.M{
		"table":   name,
		"entity":  EntityName(name),
		"columns": columns,
	}
	if _, err := c.mongoDB.Collection("schema_registry").InsertOne(c.ctx, doc); err != nil {
		return fmt.Errorf("insert schema error: %w", err)
	}
	return nil
}

// ============================================
// REDIS IMPLEMENTATION
// ============================================

func (c *Client) applyRedis(ct *ast.CreateTable) error {
	key := "schema:" + ct.Name.Name

	if ct.IfNotExists {
		n, err := c.redisDB.Exists(c.ctx, key).Result()
		if err != nil {
			return fmt.Errorf("exists error: %w", err)
		}
		if n > 0 {
			return nil
		}
	}

	fields := make(map[string]string, len(ct.Columns))
	for _, col := range ct.Columns {
		spec := col.Type.Tag.String()
		if col.Nullability == ast.NotNullable {
			spec += " NOT NULL"
		}
		fields[col.Name.Name] = spec
	}

	if err := c.redisDB.HSet(c.ctx, key, fields).Err(); err != nil {
		return fmt.Errorf("hset error: %w", err)
	}
	return nil
}

// ============================================
// HELPERS
// ============================================

// EntityName derives the singular PascalCase entity name catalog consumers
// index by: users → User, order_items → OrderItem
func EntityName(table string) string {
	singular := inflection.Singular(strings.ToLower(table))

	parts := strings.Split(singular, "_")
	var sb strings.Builder
	for _, p := range parts {
		if p == "" {
			continue
		}
		sb.WriteString(strings.ToUpper(p[:1]))
		sb.WriteString(p[1:])
	}
	return sb.String()
}
