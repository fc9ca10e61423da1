// Package customers resolves customers across the local store and the
// commerce platform. The local store answers first; the platform fills gaps
// and is cached back asynchronously.
package customers

import (
	"context"
	"log"
	"strings"
	"time"

	"goldenwine/db"
	"goldenwine/errs"
	"goldenwine/models"
	"goldenwine/shopify"
	"goldenwine/store"
	"goldenwine/tasks"
	"goldenwine/utils"
)

// Directory is the slice of the commerce platform the resolver uses.
type Directory interface {
	SearchCustomers(ctx context.Context, query string) ([]models.Customer, error)
	GetCustomer(ctx context.Context, id string) (*models.Customer, error)
	CreateCustomer(ctx context.Context, c *models.Customer) (*models.Customer, error)
	UpdateCustomer(ctx context.Context, id string, fields map[string]any) (*models.Customer, error)
	ListOrders(ctx context.Context, customerID string, limit int) ([]shopify.PlatformOrder, error)
}

type Resolver struct {
	Store store.Store
	Dir   Directory
	Tasks *tasks.Runner
}

func NewResolver(st store.Store, dir Directory, runner *tasks.Runner) *Resolver {
	return &Resolver{Store: st, Dir: dir, Tasks: runner}
}

// Resolve returns the customer by id, local store first, platform fallback.
// Platform hits are enriched from order history when contact fields are
// missing and cached locally off the request path.
func (rs *Resolver) Resolve(ctx context.Context, id string) (*models.Customer, error) {
	var local models.Customer
	err := rs.Store.Get(ctx, db.CustomersCollection, id, &local)
	if err == nil {
		local.IdentityLocked = !local.IsTemp()
		return &local, nil
	}
	if !errs.IsNotFound(err) {
		return nil, err
	}

	remote, err := rs.Dir.GetCustomer(ctx, id)
	if err != nil {
		return nil, err
	}
	remote.IdentityLocked = !remote.IsTemp()
	rs.enrichFromOrders(ctx, remote)
	rs.cacheAsync(remote)
	return remote, nil
}

// Search looks up customers by phone, email or name. Local matches win; only
// an empty local result reaches out to the platform. The returned source is
// "local" or "shopify".
func (rs *Resolver) Search(ctx context.Context, query string) ([]models.Customer, string, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, "", errs.Validation("search query is required")
	}

	local, err := rs.searchLocal(ctx, query)
	if err != nil {
		return nil, "", err
	}
	if len(local) > 0 {
		for i := range local {
			local[i].IdentityLocked = !local[i].IsTemp()
		}
		return local, "local", nil
	}

	remote, err := rs.searchRemote(ctx, query)
	if err != nil {
		return nil, "", err
	}
	for i := range remote {
		remote[i].IdentityLocked = !remote[i].IsTemp()
		rs.cacheAsync(&remote[i])
	}
	return remote, "shopify", nil
}

// searchRemote queries the platform. Phone lookups search each variant
// separately and merge by id; a variant that errors is skipped so one bad
// query never hides the others' hits.
func (rs *Resolver) searchRemote(ctx context.Context, query string) ([]models.Customer, error) {
	if !LooksLikePhone(query) {
		return rs.Dir.SearchCustomers(ctx, query)
	}

	seen := map[string]bool{}
	var hits []models.Customer
	var lastErr error
	for _, variant := range PhoneVariants(query) {
		batch, err := rs.Dir.SearchCustomers(ctx, "phone:"+variant)
		if err != nil {
			log.Printf("searchRemote: variant %q: %v", variant, err)
			lastErr = err
			continue
		}
		for _, c := range batch {
			if !seen[c.ID] {
				seen[c.ID] = true
				hits = append(hits, c)
			}
		}
	}
	if len(hits) == 0 && lastErr != nil {
		return nil, lastErr
	}
	return hits, nil
}

func (rs *Resolver) searchLocal(ctx context.Context, query string) ([]models.Customer, error) {
	if LooksLikePhone(query) {
		seen := map[string]bool{}
		var hits []models.Customer
		for _, variant := range PhoneVariants(query) {
			var batch []models.Customer
			q := store.Query{Filter: []store.Predicate{store.Eq("phone", variant)}}
			if err := rs.Store.Find(ctx, db.CustomersCollection, q, &batch); err != nil {
				return nil, err
			}
			for _, c := range batch {
				if !seen[c.ID] {
					seen[c.ID] = true
					hits = append(hits, c)
				}
			}
		}
		return hits, nil
	}

	// email and name lookups: bounded fetch, filter client-side (the store
	// has no text index)
	var candidates []models.Customer
	q := store.Query{SortBy: "updated_at", Desc: true, Limit: 250}
	if err := rs.Store.Find(ctx, db.CustomersCollection, q, &candidates); err != nil {
		return nil, err
	}

	var hits []models.Customer
	if strings.Contains(query, "@") {
		email := strings.ToLower(strings.TrimSpace(query))
		for _, c := range candidates {
			if strings.ToLower(strings.TrimSpace(c.Email)) == email {
				hits = append(hits, c)
			}
		}
		return hits, nil
	}
	name := strings.ToLower(query)
	for _, c := range candidates {
		full := strings.ToLower(c.FullName())
		if strings.Contains(strings.ToLower(c.FirstName), name) ||
			strings.Contains(strings.ToLower(c.LastName), name) ||
			strings.Contains(full, name) {
			hits = append(hits, c)
		}
	}
	return hits, nil
}

// Create registers a customer on the platform when possible. A platform
// failure falls back to a local-only record under a temp id.
func (rs *Resolver) Create(ctx context.Context, c *models.Customer) (*models.Customer, error) {
	if c.FirstName == "" && c.LastName == "" && c.Phone == "" && c.Email == "" {
		return nil, errs.Validation("customer needs at least a name, phone or email")
	}

	now := time.Now()
	created, err := rs.Dir.CreateCustomer(ctx, c)
	if err != nil {
		log.Printf("CreateCustomer: platform create failed, keeping local only: %v", err)
		c.ID = utils.TempID()
		c.CreatedAt = now
		c.UpdatedAt = now
		c.IdentityLocked = false
		created = c
	} else {
		created.IdentityLocked = true
	}

	if err := rs.Store.Set(ctx, db.CustomersCollection, created.ID, created); err != nil {
		return nil, err
	}
	return created, nil
}

// Update pushes identity-safe fields to the platform best-effort and always
// saves locally. The platform's view of the customer wins over submitted
// fields when the remote update succeeds.
func (rs *Resolver) Update(ctx context.Context, id string, changes map[string]any) (*models.Customer, error) {
	var current models.Customer
	if err := rs.Store.Get(ctx, db.CustomersCollection, id, &current); err != nil {
		if !errs.IsNotFound(err) {
			return nil, err
		}
		remote, rerr := rs.Dir.GetCustomer(ctx, id)
		if rerr != nil {
			return nil, rerr
		}
		current = *remote
	}

	if !current.IsTemp() {
		remote, err := rs.Dir.UpdateCustomer(ctx, id, changes)
		if err != nil {
			log.Printf("UpdateCustomer: platform update failed for %s: %v", id, err)
		} else {
			current = *remote
			changes = nil // remote state already reflects the edit
		}
	}
	applyCustomerChanges(&current, changes)
	current.UpdatedAt = time.Now()
	current.IdentityLocked = !current.IsTemp()

	if err := rs.Store.Set(ctx, db.CustomersCollection, current.ID, &current); err != nil {
		return nil, err
	}
	return &current, nil
}

func applyCustomerChanges(c *models.Customer, changes map[string]any) {
	for k, v := range changes {
		s, _ := v.(string)
		switch k {
		case "first_name":
			c.FirstName = s
		case "last_name":
			c.LastName = s
		case "email":
			c.Email = s
		case "phone":
			c.Phone = s
		case "note":
			c.Note = s
		case "tags":
			c.Tags = s
		}
	}
}

// enrichFromOrders backfills name/phone/email/address from the most recent
// order carrying contact details. Only runs for guest-style records where all
// four identifying fields are absent on the customer itself.
func (rs *Resolver) enrichFromOrders(ctx context.Context, c *models.Customer) {
	if c.Phone != "" || c.Email != "" || c.FirstName != "" || c.LastName != "" {
		return
	}
	orders, err := rs.Dir.ListOrders(ctx, c.ID, 10)
	if err != nil {
		log.Printf("enrichFromOrders: listing orders for %s: %v", c.ID, err)
		return
	}
	for _, o := range orders {
		if c.Phone == "" && o.ContactPhone != "" {
			c.Phone = o.ContactPhone
		}
		if c.Email == "" && o.Email != "" {
			c.Email = o.Email
		}
		if o.ContactAddress != nil {
			if c.DefaultAddress == nil {
				c.DefaultAddress = o.ContactAddress
			}
			if c.FirstName == "" && c.LastName == "" {
				c.FirstName = o.ContactAddress.FirstName
				c.LastName = o.ContactAddress.LastName
			}
		}
		if c.Phone != "" && c.Email != "" && c.DefaultAddress != nil {
			break
		}
	}
}

// cacheAsync writes a platform customer through to the local store without
// blocking the request.
func (rs *Resolver) cacheAsync(c *models.Customer) {
	cp := *c
	rs.Tasks.Go("cache-customer", func() error {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return rs.Store.Set(ctx, db.CustomersCollection, cp.ID, &cp)
	})
}
