package repository

import "gorm.io/gorm"

// AutoMigrate creates the portal schema in the authoritative store.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&userModel{},
		&roomModel{},
		&bookingModel{},
		&activityEventModel{},
		&userAggregateModel{},
		&postModel{},
		&commentModel{},
		&reactionModel{},
		&proteinExchangeModel{},
		&equipmentRequestModel{},
	)
}

// AutoMigrateLocal creates the local-storage schema (pending queue and
// booking snapshot).
func AutoMigrateLocal(db *gorm.DB) error {
	return db.AutoMigrate(
		&pendingBookingModel{},
		&bookingSnapshotModel{},
	)
}
