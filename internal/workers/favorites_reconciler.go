package workers

import (
	"sakanly_backend/internal/logger"

	"github.com/robfig/cron/v3"
	"gorm.io/gorm"
)

// FavoritesReconciler repairs drift between the property-side favorites table
// and the user-side wishlist. Both sides are written in one transaction, so
// under normal operation the job finds nothing; it exists to heal rows written
// before the dual write was made atomic.
type FavoritesReconciler struct {
	db       *gorm.DB
	cron     *cron.Cron
	schedule string
}

func NewFavoritesReconciler(db *gorm.DB, schedule string) *FavoritesReconciler {
	if schedule == "" {
		schedule = "@every 1h"
	}
	return &FavoritesReconciler{
		db:       db,
		cron:     cron.New(),
		schedule: schedule,
	}
}

func (w *FavoritesReconciler) Start() error {
	if _, err := w.cron.AddFunc(w.schedule, w.Run); err != nil {
		return err
	}
	w.cron.Start()
	logger.Info("favorites reconciler started", "schedule", w.schedule)
	return nil
}

func (w *FavoritesReconciler) Stop() {
	ctx := w.cron.Stop()
	<-ctx.Done()
	logger.Info("favorites reconciler stopped")
}

// Run backfills each side from the other. Orphaned rows pointing at deleted
// properties or users are left to the foreign keys.
func (w *FavoritesReconciler) Run() {
	missingWishlist := w.db.Exec(`
		INSERT INTO wishlist_items (user_id, property_id, added_at)
		SELECT pf.user_id, pf.property_id, pf.created_at
		FROM property_favorites pf
		LEFT JOIN wishlist_items wi
			ON wi.user_id = pf.user_id AND wi.property_id = pf.property_id
		WHERE wi.user_id IS NULL`)
	if missingWishlist.Error != nil {
		logger.WithError(missingWishlist.Error).Error("favorites reconciler: wishlist backfill failed")
		return
	}

	missingFavorites := w.db.Exec(`
		INSERT INTO property_favorites (property_id, user_id, created_at)
		SELECT wi.property_id, wi.user_id, wi.added_at
		FROM wishlist_items wi
		LEFT JOIN property_favorites pf
			ON pf.user_id = wi.user_id AND pf.property_id = wi.property_id
		WHERE pf.user_id IS NULL`)
	if missingFavorites.Error != nil {
		logger.WithError(missingFavorites.Error).Error("favorites reconciler: favorites backfill failed")
		return
	}

	if repaired := missingWishlist.RowsAffected + missingFavorites.RowsAffected; repaired > 0 {
		logger.Info("favorites reconciler repaired rows", "count", repaired)
	}
}
