package cart

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/JackHouche/cbdproject/internal/cart/cache"
	"github.com/JackHouche/cbdproject/internal/cart/repository"
	"github.com/JackHouche/cbdproject/internal/domain"
	"golang.org/x/sync/singleflight"
)

var ErrInvalidQuantity = errors.New("quantity must be at least 1")

// Service is the multi-user cart backend: repository-backed, cache in front.
type Service struct {
	repo  repository.CartRepository
	cache cache.CartCache
	sfg   singleflight.Group // Prevents cache stampede
}

func NewService(repo repository.CartRepository, cache cache.CartCache) *Service {
	return &Service{
		repo:  repo,
		cache: cache,
	}
}

func (s *Service) GetCart(ctx context.Context, userID string) (*domain.Cart, error) {
	// Use singleflight so concurrent cache misses for the same user collapse
	// into one repository read
	v, err, _ := s.sfg.Do(userID, func() (interface{}, error) {

		cart, err := s.cache.Get(ctx, userID)
		if err == nil {
			return cart, nil // cart is in cache
		}

		if !errors.Is(err, cache.ErrCacheMiss) {
			log.Printf("cache get error: %v", err) // log cache error but continue
		}

		cart, errGet := s.repo.GetCart(ctx, userID)
		if errGet != nil && errors.Is(errGet, repository.ErrCartNotFound) {
			// A user with no stored cart has an empty cart, not an error
			return &domain.Cart{
				UserID:    userID,
				Items:     nil,
				CreatedAt: time.Now(),
				UpdatedAt: time.Now(),
			}, nil
		}
		if errGet != nil {
			return nil, errGet
		}

		go func() {
			errSet := s.cache.Set(context.Background(), userID, cart)
			if errSet != nil {
				log.Printf("cache set error: %v", errSet)
			}
		}()

		return cart, nil
	})

	if err != nil {
		return nil, err
	}

	return v.(*domain.Cart), nil
}

// AddItem appends the line item or, when the product is already in the cart,
// adds its quantity to the existing entry.
func (s *Service) AddItem(ctx context.Context, userID string, item domain.LineItem) error {
	if item.Quantity < 1 {
		return ErrInvalidQuantity
	}

	errAdd := s.repo.AddItem(ctx, userID, item)
	if errAdd != nil {
		log.Printf("repo add item error: %v", errAdd)
		return errAdd
	}

	s.invalidateCache(userID)
	return nil
}

// UpdateQuantity sets the quantity exactly. Values below 1 are a no-op;
// decrementing never drops an item out of the cart.
func (s *Service) UpdateQuantity(ctx context.Context, userID string, productID string, quantity int) error {
	if quantity < 1 {
		return nil
	}

	errUpdate := s.repo.UpdateItemQuantity(ctx, userID, productID, quantity)
	if errUpdate != nil {
		if errors.Is(errUpdate, repository.ErrItemNotFound) {
			return nil
		}
		log.Printf("repo update item quantity error: %v", errUpdate)
		return errUpdate
	}

	s.invalidateCache(userID)
	return nil
}

// RemoveItem deletes the matching line item. A missing item or missing cart
// is benign.
func (s *Service) RemoveItem(ctx context.Context, userID string, productID string) error {
	errRemove := s.repo.RemoveItem(ctx, userID, productID)
	if errRemove != nil {
		if errors.Is(errRemove, repository.ErrCartNotFound) || errors.Is(errRemove, repository.ErrItemNotFound) {
			return nil
		}
		log.Printf("repo remove item error: %v", errRemove)
		return errRemove
	}

	s.invalidateCache(userID)
	return nil
}

// ClearCart empties the cart. Clearing a cart that was never created is benign.
func (s *Service) ClearCart(ctx context.Context, userID string) error {
	errDelete := s.repo.DeleteCart(ctx, userID)
	if errDelete != nil {
		if errors.Is(errDelete, repository.ErrCartNotFound) {
			return nil
		}
		log.Printf("repo delete cart error: %v", errDelete)
		return errDelete
	}

	s.invalidateCache(userID)
	return nil
}

func (s *Service) invalidateCache(userID string) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	errInvalidate := s.cache.Delete(ctx, userID)
	if errInvalidate != nil {
		log.Printf("cache invalidate error: %v", errInvalidate)
	}
}
