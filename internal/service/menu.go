package service

import (
	"context"
	"strings"

	"github.com/Skotchmaster/restaurant_pos/internal/events"
	"github.com/Skotchmaster/restaurant_pos/internal/logging"
	"github.com/Skotchmaster/restaurant_pos/internal/models"
	"github.com/Skotchmaster/restaurant_pos/internal/repo"
	"github.com/Skotchmaster/restaurant_pos/internal/transport"
	"github.com/Skotchmaster/restaurant_pos/internal/util"
)

// MenuIndex is a full-text index over menu items.
type MenuIndex interface {
	IndexMenuItem(ctx context.Context, item models.MenuItem) error
	RemoveMenuItem(ctx context.Context, id uint) error
	SearchMenu(ctx context.Context, query string, limit int) ([]uint, error)
}

type MenuService struct {
	Repo   *repo.GormRepo
	Events events.Publisher
	// Index is optional; without it search runs against the database.
	Index MenuIndex
}

func (s *MenuService) List(ctx context.Context) ([]models.MenuItem, error) {
	items, err := s.Repo.ListMenuItems(ctx)
	return items, storeErr("menu item", err)
}

func (s *MenuService) ListByCategory(ctx context.Context, category string) ([]models.MenuItem, error) {
	items, err := s.Repo.ListMenuItemsByCategory(ctx, category)
	return items, storeErr("menu item", err)
}

func (s *MenuService) Search(ctx context.Context, query string, limit int) ([]models.MenuItem, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, invalid("q is required")
	}
	limit = util.Limit(limit)

	if s.Index != nil {
		items, err := s.searchIndex(ctx, query, limit)
		if err == nil {
			return items, nil
		}
		logging.FromContext(ctx).Warn("menu_search_index_failed", "fallback", "sql", "error", err)
	}

	items, err := s.Repo.SearchMenuItems(ctx, query, limit)
	return items, storeErr("menu item", err)
}

// searchIndex keeps the index ranking and drops hits whose row is gone.
func (s *MenuService) searchIndex(ctx context.Context, query string, limit int) ([]models.MenuItem, error) {
	ids, err := s.Index.SearchMenu(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	rows, err := s.Repo.GetMenuItemsByIDs(ctx, ids)
	if err != nil {
		return nil, storeErr("menu item", err)
	}
	items := make([]models.MenuItem, 0, len(ids))
	for _, id := range ids {
		if it, ok := rows[id]; ok {
			items = append(items, it)
		}
	}
	return items, nil
}

func (s *MenuService) Create(ctx context.Context, req transport.MenuItemRequest) (*models.MenuItem, error) {
	if err := checkMenuItem(req); err != nil {
		return nil, err
	}

	item := &models.MenuItem{
		Name:        strings.TrimSpace(req.Name),
		Category:    strings.TrimSpace(req.Category),
		Price:       round2(*req.Price),
		Description: req.Description,
		Available:   true,
	}
	if req.Available != nil {
		item.Available = *req.Available
	}

	if err := s.Repo.CreateMenuItem(ctx, item); err != nil {
		return nil, storeErr("menu item", err)
	}

	s.reindex(ctx, *item)
	events.Emit(ctx, s.Events, events.TopicMenu, events.Event{Type: "menu_item_created", ID: item.ID, Data: item})
	return item, nil
}

// Update replaces every field of the item. Available is kept when the
// request leaves it out.
func (s *MenuService) Update(ctx context.Context, id uint, req transport.MenuItemRequest) (*models.MenuItem, error) {
	if err := checkMenuItem(req); err != nil {
		return nil, err
	}

	var item *models.MenuItem
	err := s.Repo.Transaction(ctx, func(tx *repo.GormRepo) error {
		cur, err := tx.GetMenuItem(ctx, id)
		if err != nil {
			return err
		}
		cur.Name = strings.TrimSpace(req.Name)
		cur.Category = strings.TrimSpace(req.Category)
		cur.Price = round2(*req.Price)
		cur.Description = req.Description
		if req.Available != nil {
			cur.Available = *req.Available
		}
		item = cur
		return tx.SaveMenuItem(ctx, cur)
	})
	if err != nil {
		return nil, storeErr("menu item", err)
	}

	s.reindex(ctx, *item)
	events.Emit(ctx, s.Events, events.TopicMenu, events.Event{Type: "menu_item_updated", ID: item.ID, Data: item})
	return item, nil
}

// Delete removes the menu row only. Order items keep their price snapshot.
func (s *MenuService) Delete(ctx context.Context, id uint) error {
	if err := s.Repo.DeleteMenuItem(ctx, id); err != nil {
		return storeErr("menu item", err)
	}

	if s.Index != nil {
		if err := s.Index.RemoveMenuItem(ctx, id); err != nil {
			logging.FromContext(ctx).Warn("menu_index_remove_failed", "id", id, "error", err)
		}
	}
	events.Emit(ctx, s.Events, events.TopicMenu, events.Event{Type: "menu_item_deleted", ID: id})
	return nil
}

func (s *MenuService) reindex(ctx context.Context, item models.MenuItem) {
	if s.Index == nil {
		return
	}
	if err := s.Index.IndexMenuItem(ctx, item); err != nil {
		logging.FromContext(ctx).Warn("menu_index_failed", "id", item.ID, "error", err)
	}
}

func checkMenuItem(req transport.MenuItemRequest) error {
	if strings.TrimSpace(req.Name) == "" {
		return invalid("name is required")
	}
	if strings.TrimSpace(req.Category) == "" {
		return invalid("category is required")
	}
	if req.Price == nil {
		return invalid("price is required")
	}
	if *req.Price < 0 {
		return invalid("price must be >= 0")
	}
	return nil
}

// Reindex pushes every stored menu item to the index. It runs at startup so
// the index catches up with writes made while it was unavailable.
func (s *MenuService) Reindex(ctx context.Context) (int, error) {
	if s.Index == nil {
		return 0, nil
	}
	items, err := s.Repo.ListMenuItems(ctx)
	if err != nil {
		return 0, storeErr("menu item", err)
	}
	for i, it := range items {
		if err := s.Index.IndexMenuItem(ctx, it); err != nil {
			return i, err
		}
	}
	return len(items), nil
}
