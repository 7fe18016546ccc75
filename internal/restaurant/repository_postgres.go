package restaurant

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const uniqueViolation = "23505"

type PostgresRepository struct {
	db *pgxpool.Pool
}

func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// --------------------------------------------------
// Create a new restaurant
// --------------------------------------------------
func (r *PostgresRepository) Create(ctx context.Context, restaurant *Restaurant) error {
	if restaurant.ID == "" {
		restaurant.ID = uuid.New().String()
	}

	menuItems, err := json.Marshal(restaurant.MenuItems)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO restaurants (
			id,
			user_id,
			restaurant_name,
			city,
			country,
			delivery_price,
			estimated_delivery_time,
			cuisines,
			menu_items,
			image_url,
			last_updated
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`

	_, err = r.db.Exec(ctx, query,
		restaurant.ID,
		restaurant.UserID,
		restaurant.RestaurantName,
		restaurant.City,
		restaurant.Country,
		restaurant.DeliveryPrice,
		restaurant.EstimatedDeliveryTime,
		restaurant.Cuisines,
		menuItems,
		restaurant.ImageURL,
		restaurant.LastUpdated,
	)

	// The UNIQUE constraint on user_id closes the race between two
	// concurrent creates for the same owner.
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
		return ErrConflict
	}
	return err
}

// --------------------------------------------------
// Overwrite the mutable fields of an existing restaurant
// --------------------------------------------------
func (r *PostgresRepository) Update(ctx context.Context, restaurant *Restaurant) error {
	menuItems, err := json.Marshal(restaurant.MenuItems)
	if err != nil {
		return err
	}

	tag, err := r.db.Exec(ctx, `
		UPDATE restaurants
		SET restaurant_name = $1,
		    city = $2,
		    country = $3,
		    delivery_price = $4,
		    estimated_delivery_time = $5,
		    cuisines = $6,
		    menu_items = $7,
		    image_url = $8,
		    last_updated = $9
		WHERE id = $10
	`,
		restaurant.RestaurantName,
		restaurant.City,
		restaurant.Country,
		restaurant.DeliveryPrice,
		restaurant.EstimatedDeliveryTime,
		restaurant.Cuisines,
		menuItems,
		restaurant.ImageURL,
		restaurant.LastUpdated,
		restaurant.ID,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

const restaurantColumns = `
	id,
	user_id,
	restaurant_name,
	city,
	country,
	delivery_price,
	estimated_delivery_time,
	cuisines,
	menu_items,
	image_url,
	last_updated
`

func (r *PostgresRepository) FindByID(ctx context.Context, id string) (*Restaurant, error) {
	row := r.db.QueryRow(ctx,
		`SELECT `+restaurantColumns+` FROM restaurants WHERE id = $1`, id)
	return scanRestaurant(row)
}

func (r *PostgresRepository) FindByOwner(ctx context.Context, userID string) (*Restaurant, error) {
	row := r.db.QueryRow(ctx,
		`SELECT `+restaurantColumns+` FROM restaurants WHERE user_id = $1`, userID)
	return scanRestaurant(row)
}

func scanRestaurant(row pgx.Row) (*Restaurant, error) {
	res := &Restaurant{}
	var menuItems []byte

	err := row.Scan(
		&res.ID,
		&res.UserID,
		&res.RestaurantName,
		&res.City,
		&res.Country,
		&res.DeliveryPrice,
		&res.EstimatedDeliveryTime,
		&res.Cuisines,
		&menuItems,
		&res.ImageURL,
		&res.LastUpdated,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal(menuItems, &res.MenuItems); err != nil {
		return nil, err
	}
	return res, nil
}

// --------------------------------------------------
// Search
// --------------------------------------------------

func (r *PostgresRepository) CountByCity(ctx context.Context, city string) (int, error) {
	var count int
	err := r.db.QueryRow(ctx, `
		SELECT COUNT(*) FROM restaurants
		WHERE city ILIKE '%' || $1 || '%'
	`, city).Scan(&count)
	return count, err
}

// buildSearchFilter translates SearchParams into a WHERE clause and its
// arguments. City is a case-insensitive substring; every cuisine term
// must match some stored cuisine (AND across terms); free text matches
// the restaurant name OR any cuisine, ANDed with the rest.
func buildSearchFilter(p SearchParams) (string, []any) {
	conds := []string{`city ILIKE '%' || $1 || '%'`}
	args := []any{p.City}

	for _, term := range p.SelectedCuisines {
		args = append(args, term)
		conds = append(conds, fmt.Sprintf(
			`EXISTS (SELECT 1 FROM unnest(cuisines) AS cuisine WHERE cuisine ILIKE '%%' || $%d || '%%')`,
			len(args),
		))
	}

	if p.SearchQuery != "" {
		args = append(args, p.SearchQuery)
		n := len(args)
		conds = append(conds, fmt.Sprintf(
			`(restaurant_name ILIKE '%%' || $%d || '%%' OR EXISTS (SELECT 1 FROM unnest(cuisines) AS cuisine WHERE cuisine ILIKE '%%' || $%d || '%%'))`,
			n, n,
		))
	}

	return strings.Join(conds, " AND "), args
}

func (r *PostgresRepository) Search(ctx context.Context, params SearchParams) ([]*Restaurant, int, error) {
	filter, args := buildSearchFilter(params)
	offset := (params.Page - 1) * PageSize

	query := fmt.Sprintf(
		`SELECT %s FROM restaurants WHERE %s ORDER BY %s ASC LIMIT %d OFFSET %d`,
		restaurantColumns, filter, sortColumns[params.SortOption], PageSize, offset,
	)

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var restaurants []*Restaurant
	for rows.Next() {
		res, err := scanRestaurant(rows)
		if err != nil {
			return nil, 0, err
		}
		restaurants = append(restaurants, res)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	var total int
	countQuery := `SELECT COUNT(*) FROM restaurants WHERE ` + filter
	if err := r.db.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	return restaurants, total, nil
}
