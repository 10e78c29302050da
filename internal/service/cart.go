package service

import (
	"context"
	"encoding/json"
	"time"

	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"autoparts-storefront-api/internal/cache"
	"autoparts-storefront-api/internal/catalog"
	"autoparts-storefront-api/internal/model"
	"autoparts-storefront-api/pkg/apierror"
)

const cartKeyPrefix = "cart:"

// Prices in the storefront are quoted in Guatemalan quetzales.
var cartPrinter = message.NewPrinter(language.MustParse("es-GT"))

var cartCurrencyGTQ = currency.MustParseISO("GTQ")

// CartService manages per-session shopping carts. Carts live in the cache
// keyed by session id and expire with their TTL.
type CartService interface {
	Get(ctx context.Context, sessionID string) (*model.CartView, error)
	AddItem(ctx context.Context, sessionID string, input model.AddCartItemInput) (*model.CartView, error)
	UpdateQuantity(ctx context.Context, sessionID, itemID string, quantity int) (*model.CartView, error)
	RemoveItem(ctx context.Context, sessionID, itemID string) (*model.CartView, error)
	Clear(ctx context.Context, sessionID string) error
}

type cartService struct {
	cache cache.Cache
	ttl   time.Duration
}

// NewCartService creates the cart service.
func NewCartService(c cache.Cache, ttl time.Duration) CartService {
	return &cartService{cache: c, ttl: ttl}
}

func (s *cartService) Get(ctx context.Context, sessionID string) (*model.CartView, error) {
	if sessionID == "" {
		return nil, apierror.BadRequest("Sesión requerida.")
	}

	cart, err := s.load(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	return cartView(cart), nil
}

func (s *cartService) AddItem(ctx context.Context, sessionID string, input model.AddCartItemInput) (*model.CartView, error) {
	if sessionID == "" {
		return nil, apierror.BadRequest("Sesión requerida.")
	}
	if input.ID == "" || input.Title == "" {
		return nil, apierror.ValidationError("Datos de artículo incompletos.",
			apierror.FieldError{Field: "id", Message: "id and title are required"})
	}

	quantity := input.Quantity
	if quantity < 1 {
		quantity = 1
	}

	price, priceLabel := resolveCartPrice(input)

	cart, err := s.load(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	// Adding an item already in the cart accumulates its quantity.
	found := false
	for i := range cart.Items {
		if cart.Items[i].ID == input.ID {
			cart.Items[i].Quantity += quantity
			if price > 0 {
				cart.Items[i].UnitPrice = price
				cart.Items[i].PriceLabel = priceLabel
			}
			found = true
			break
		}
	}
	if !found {
		cart.Items = append(cart.Items, model.CartItem{
			ID:         input.ID,
			Title:      input.Title,
			Image:      input.Image,
			Quantity:   quantity,
			UnitPrice:  price,
			PriceLabel: priceLabel,
		})
	}

	if err := s.save(ctx, sessionID, cart); err != nil {
		return nil, err
	}
	return cartView(cart), nil
}

func (s *cartService) UpdateQuantity(ctx context.Context, sessionID, itemID string, quantity int) (*model.CartView, error) {
	if sessionID == "" {
		return nil, apierror.BadRequest("Sesión requerida.")
	}
	if quantity < 1 {
		quantity = 1
	}

	cart, err := s.load(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	found := false
	for i := range cart.Items {
		if cart.Items[i].ID == itemID {
			cart.Items[i].Quantity = quantity
			found = true
			break
		}
	}
	if !found {
		return nil, apierror.NotFound("Artículo no encontrado en el carrito.")
	}

	if err := s.save(ctx, sessionID, cart); err != nil {
		return nil, err
	}
	return cartView(cart), nil
}

func (s *cartService) RemoveItem(ctx context.Context, sessionID, itemID string) (*model.CartView, error) {
	if sessionID == "" {
		return nil, apierror.BadRequest("Sesión requerida.")
	}

	cart, err := s.load(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	filtered := cart.Items[:0]
	for _, item := range cart.Items {
		if item.ID != itemID {
			filtered = append(filtered, item)
		}
	}
	cart.Items = filtered

	if err := s.save(ctx, sessionID, cart); err != nil {
		return nil, err
	}
	return cartView(cart), nil
}

func (s *cartService) Clear(ctx context.Context, sessionID string) error {
	if sessionID == "" {
		return apierror.BadRequest("Sesión requerida.")
	}
	return s.cache.Delete(ctx, cartKeyPrefix+sessionID)
}

func (s *cartService) load(ctx context.Context, sessionID string) (*model.Cart, error) {
	data, err := s.cache.Get(ctx, cartKeyPrefix+sessionID)
	if err != nil {
		if err == cache.ErrCacheMiss {
			return &model.Cart{}, nil
		}
		return nil, apierror.InternalError("No se pudo cargar el carrito.").WithCause(err)
	}

	var cart model.Cart
	if err := json.Unmarshal(data, &cart); err != nil {
		// A corrupt cart entry starts the session over.
		return &model.Cart{}, nil
	}
	return &cart, nil
}

func (s *cartService) save(ctx context.Context, sessionID string, cart *model.Cart) error {
	cart.UpdatedAt = time.Now().UTC()

	data, err := json.Marshal(cart)
	if err != nil {
		return apierror.InternalError("No se pudo guardar el carrito.").WithCause(err)
	}
	if err := s.cache.Set(ctx, cartKeyPrefix+sessionID, data, s.ttl); err != nil {
		return apierror.InternalError("No se pudo guardar el carrito.").WithCause(err)
	}
	return nil
}

// resolveCartPrice extracts a numeric unit price from whatever the
// storefront sent: a numeric price field, a formatted price string, or a
// price label like "Q 1,250.00".
func resolveCartPrice(input model.AddCartItemInput) (float64, string) {
	label := input.PriceLabel

	if input.Price != nil {
		if f, ok := catalog.ParseNumber(input.Price); ok {
			if label == "" {
				label = FormatGTQ(f)
			}
			return f, label
		}
	}
	if label != "" {
		if f, ok := catalog.ParseNumber(label); ok {
			return f, label
		}
	}
	return 0, label
}

// FormatGTQ renders an amount in quetzales for display.
func FormatGTQ(amount float64) string {
	return cartPrinter.Sprintf("%v", currency.NarrowSymbol(cartCurrencyGTQ.Amount(amount)))
}

func cartView(cart *model.Cart) *model.CartView {
	items := cart.Items
	if items == nil {
		items = []model.CartItem{}
	}
	total := cart.Total()

	return &model.CartView{
		Items:          items,
		Total:          total,
		TotalFormatted: FormatGTQ(total),
		ItemCount:      cart.ItemCount(),
		UpdatedAt:      cart.UpdatedAt,
	}
}

// Ensure cartService implements CartService
var _ CartService = (*cartService)(nil)
