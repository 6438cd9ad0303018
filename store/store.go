// Package store keeps imported manuals in a SQLite database.
package store

import (
	"encoding/json"
	"log"
	"sort"
	"time"

	"github.com/DiscordGophers/dr-manual/document"
	"github.com/pkg/errors"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var ErrNotFound = errors.New("manual not found")

// Manual is a stored document.
type Manual struct {
	ID         uint   `gorm:"primaryKey"`
	Name       string `gorm:"uniqueIndex;size:256;not null"`
	NextItemID int
	Items      []Item `gorm:"foreignKey:ManualID"`
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// Item is one document item. Position is nil for items that are part of the
// document but not placed in its ordering.
type Item struct {
	ID       uint `gorm:"primaryKey"`
	ManualID uint `gorm:"index;not null"`
	ItemID   int  `gorm:"not null"`
	Position *int
	Data     string `gorm:"type:text;not null"`
}

type Store struct {
	DB *gorm.DB
}

// Open opens or creates the database at path.
func Open(path string) (*Store, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, errors.Wrap(err, "could not open database")
	}

	if err := db.AutoMigrate(&Manual{}, &Item{}); err != nil {
		return nil, errors.Wrap(err, "could not migrate database")
	}

	log.Printf("Opened manual store at %s", path)
	return &Store{DB: db}, nil
}

func (s *Store) Close() error {
	sqlDB, err := s.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// Save stores doc under name, replacing any manual stored with that name.
func (s *Store) Save(name string, doc *document.Document) error {
	items, err := encode(doc)
	if err != nil {
		return err
	}

	return s.DB.Transaction(func(tx *gorm.DB) error {
		var m Manual
		err := tx.Where("name = ?", name).First(&m).Error
		switch {
		case err == nil:
			if err := tx.Where("manual_id = ?", m.ID).Delete(&Item{}).Error; err != nil {
				return errors.Wrapf(err, "could not clear manual %q", name)
			}
			m.NextItemID = doc.NextItemID
			if err := tx.Save(&m).Error; err != nil {
				return errors.Wrapf(err, "could not update manual %q", name)
			}
		case errors.Is(err, gorm.ErrRecordNotFound):
			m = Manual{Name: name, NextItemID: doc.NextItemID}
			if err := tx.Create(&m).Error; err != nil {
				return errors.Wrapf(err, "could not create manual %q", name)
			}
		default:
			return err
		}

		if len(items) == 0 {
			return nil
		}
		for i := range items {
			items[i].ManualID = m.ID
		}
		return errors.Wrapf(tx.CreateInBatches(items, 200).Error, "could not store items of %q", name)
	})
}

func encode(doc *document.Document) ([]Item, error) {
	positions := make(map[int]int, len(doc.Ordering))
	for i, ref := range doc.Ordering {
		positions[ref.ItemID] = i
	}

	ids := make([]int, 0, len(doc.Items))
	for id := range doc.Items {
		ids = append(ids, id)
	}
	sort.Ints(ids)

	items := make([]Item, 0, len(ids))
	for _, id := range ids {
		data, err := json.Marshal(doc.Items[id])
		if err != nil {
			return nil, err
		}
		item := Item{ItemID: id, Data: string(data)}
		if pos, ok := positions[id]; ok {
			item.Position = &pos
		}
		items = append(items, item)
	}
	return items, nil
}

// Load rebuilds the document stored under name.
func (s *Store) Load(name string) (*document.Document, error) {
	var m Manual
	err := s.DB.Preload("Items", func(db *gorm.DB) *gorm.DB {
		return db.Order("item_id ASC")
	}).Where("name = ?", name).First(&m).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errors.Wrapf(ErrNotFound, "%q", name)
	}
	if err != nil {
		return nil, err
	}

	doc := &document.Document{
		Items:      make(map[int]*document.Item, len(m.Items)),
		NextItemID: m.NextItemID,
	}

	var placed []Item
	for _, item := range m.Items {
		var it document.Item
		if err := json.Unmarshal([]byte(item.Data), &it); err != nil {
			return nil, errors.Wrapf(err, "could not decode item %d of %q", item.ItemID, name)
		}
		doc.Items[item.ItemID] = &it
		if item.Position != nil {
			placed = append(placed, item)
		}
	}

	sort.Slice(placed, func(i, j int) bool {
		return *placed[i].Position < *placed[j].Position
	})
	doc.Ordering = make([]document.Ref, len(placed))
	for i, item := range placed {
		doc.Ordering[i] = document.Ref{ItemID: item.ItemID, ElementType: doc.Items[item.ItemID].Type}
	}

	return doc, nil
}

// List returns the names of all stored manuals.
func (s *Store) List() ([]string, error) {
	var names []string
	err := s.DB.Model(&Manual{}).Order("name ASC").Pluck("name", &names).Error
	return names, err
}

// Delete removes the manual stored under name.
func (s *Store) Delete(name string) error {
	return s.DB.Transaction(func(tx *gorm.DB) error {
		var m Manual
		err := tx.Where("name = ?", name).First(&m).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errors.Wrapf(ErrNotFound, "%q", name)
		}
		if err != nil {
			return err
		}

		if err := tx.Where("manual_id = ?", m.ID).Delete(&Item{}).Error; err != nil {
			return err
		}
		return tx.Delete(&m).Error
	})
}
