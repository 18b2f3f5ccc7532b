package localstore

import (
	"context"
	"encoding/json"
	"log"
	"strings"
	"time"

	"eklerchik/internal/models"
	"eklerchik/internal/repository"

	"github.com/google/uuid"
)

type subscriberRepository struct{ s *Store }

// Subscribers returns a SubscriberRepository backed by the local store.
func (s *Store) Subscribers() repository.SubscriberRepository {
	return &subscriberRepository{s: s}
}

func (r *subscriberRepository) Create(subscriber *models.Subscriber) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	ctx := context.Background()
	var list []models.Subscriber
	if _, err := r.s.get(ctx, subscribersKey, &list); err != nil {
		return err
	}
	fill(&subscriber.ID, &subscriber.CreatedAt)
	list = append([]models.Subscriber{*subscriber}, list...)
	return r.s.put(ctx, subscribersKey, list)
}

func (r *subscriberRepository) FindAll() ([]models.Subscriber, error) {
	list := []models.Subscriber{}
	if _, err := r.s.get(context.Background(), subscribersKey, &list); err != nil {
		return nil, err
	}
	return list, nil
}

func (r *subscriberRepository) ExistsByEmail(email string) (bool, error) {
	list, err := r.FindAll()
	if err != nil {
		return false, err
	}
	for _, s := range list {
		if strings.EqualFold(s.Email, email) {
			return true, nil
		}
	}
	return false, nil
}

type commentRepository struct{ s *Store }

// Comments returns a CommentRepository storing one list per article.
func (s *Store) Comments() repository.CommentRepository {
	return &commentRepository{s: s}
}

func (r *commentRepository) Create(comment *models.Comment) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	ctx := context.Background()
	key := commentsKeyPrefix + comment.ArticleID
	var list []models.Comment
	if _, err := r.s.get(ctx, key, &list); err != nil {
		return err
	}
	fill(&comment.ID, &comment.CreatedAt)
	list = append([]models.Comment{*comment}, list...)
	return r.s.put(ctx, key, list)
}

func (r *commentRepository) FindByArticleID(articleID string) ([]models.Comment, error) {
	list := []models.Comment{}
	if _, err := r.s.get(context.Background(), commentsKeyPrefix+articleID, &list); err != nil {
		return nil, err
	}
	return list, nil
}

type siteSettingRepository struct{ s *Store }

// Settings returns a SiteSettingRepository with one entry per setting key.
func (s *Store) Settings() repository.SiteSettingRepository {
	return &siteSettingRepository{s: s}
}

func (r *siteSettingRepository) FindAll() (map[string]string, error) {
	raw, err := r.s.prefixed(context.Background(), settingsKeyPrefix)
	if err != nil {
		return nil, err
	}
	settings := make(map[string]string, len(raw))
	for k, v := range raw {
		var value string
		if err := json.Unmarshal([]byte(v), &value); err != nil {
			log.Printf("Skipping unreadable local setting %s: %v", k, err)
			continue
		}
		settings[k] = value
	}
	return settings, nil
}

func (r *siteSettingRepository) Upsert(settings map[string]string) error {
	ctx := context.Background()
	for k, v := range settings {
		if err := r.s.put(ctx, settingsKeyPrefix+k, v); err != nil {
			return err
		}
	}
	return nil
}

func fill(id *string, createdAt *time.Time) {
	if *id == "" {
		*id = uuid.NewString()
	}
	if createdAt.IsZero() {
		*createdAt = time.Now()
	}
}
