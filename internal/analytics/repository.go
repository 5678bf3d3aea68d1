package analytics

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

// ServiceStat is the per-service rollup shown on the admin dashboard.
type ServiceStat struct {
	Name     string `json:"name"`
	Bookings int64  `json:"bookings"`
	Revenue  string `json:"revenue"`
}

type Summary struct {
	ServiceStats  []ServiceStat `json:"serviceStats"`
	TotalRevenue  string        `json:"totalRevenue"`
	TotalBookings int64         `json:"totalBookings"`
}

type Repository struct {
	db *pgxpool.Pool
}

func NewRepository(db *pgxpool.Pool) *Repository {
	return &Repository{db: db}
}

func (r *Repository) Summarize(ctx context.Context) (*Summary, error) {
	const q = `
SELECT service_name, COUNT(*) AS bookings, COALESCE(SUM(cost), 0)::text AS revenue
FROM decorations
GROUP BY service_name
ORDER BY COALESCE(SUM(cost), 0) DESC
`
	rows, err := r.db.Query(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := &Summary{ServiceStats: []ServiceStat{}}
	totalRevenue := decimal.Zero
	for rows.Next() {
		var s ServiceStat
		if err := rows.Scan(&s.Name, &s.Bookings, &s.Revenue); err != nil {
			return nil, err
		}
		rev, err := decimal.NewFromString(s.Revenue)
		if err != nil {
			return nil, err
		}
		totalRevenue = totalRevenue.Add(rev)
		out.TotalBookings += s.Bookings
		out.ServiceStats = append(out.ServiceStats, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	out.TotalRevenue = totalRevenue.StringFixed(2)
	return out, nil
}
