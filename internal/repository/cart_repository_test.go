package repository_test

import (
	"testing"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/google/go-cmp/cmp"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/nikolayk812/storefront/internal/domain"
	"github.com/nikolayk812/storefront/internal/port"
	"github.com/nikolayk812/storefront/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

type cartRepositorySuite struct {
	suite.Suite

	repo port.CartRepository
	pool *pgxpool.Pool
}

// entry point to run the tests in the suite
func TestCartRepositorySuite(t *testing.T) {
	suite.Run(t, new(cartRepositorySuite))
}

// before all tests in the suite
func (suite *cartRepositorySuite) SetupSuite() {
	ctx := suite.T().Context()

	_, connStr, err := startPostgres(ctx)
	suite.NoError(err)

	suite.pool, err = pgxpool.New(ctx, connStr)
	suite.NoError(err)

	suite.repo, err = repository.NewCart(suite.pool)
	suite.NoError(err)
}

// after all tests in the suite
func (suite *cartRepositorySuite) TearDownSuite() {
	if suite.pool != nil {
		suite.pool.Close()
	}
}

func (suite *cartRepositorySuite) TestCreateCart() {
	defer suite.deleteAll()

	tests := []struct {
		name      string
		ownerID   string
		wantError string
	}{
		{
			name:    "create cart: ok",
			ownerID: gofakeit.UUID(),
		},
		{
			name:      "create cart with empty owner ID: error",
			ownerID:   "",
			wantError: "ownerID is empty",
		},
	}

	for _, tt := range tests {
		suite.Run(tt.name, func() {
			t := suite.T()
			ctx := t.Context()

			created, err := suite.repo.CreateCart(ctx, tt.ownerID)
			if tt.wantError != "" {
				require.EqualError(t, err, tt.wantError)
				return
			}
			require.NoError(t, err)

			assert.NotEmpty(t, created.ID)
			assert.Equal(t, tt.ownerID, created.OwnerID)
			assert.Empty(t, created.Items)

			// A fresh cart reads back legitimately empty, not as missing.
			fetched, err := suite.repo.GetCart(ctx, created.ID)
			require.NoError(t, err)
			assert.Equal(t, created.OwnerID, fetched.OwnerID)
			assert.Empty(t, fetched.Items)
		})
	}
}

func (suite *cartRepositorySuite) TestGetCart() {
	defer suite.deleteAll()

	suite.Run("unknown cart id: not found", func() {
		t := suite.T()

		_, err := suite.repo.GetCart(t.Context(), gofakeit.UUID())
		require.ErrorIs(t, err, domain.ErrCartNotFound)
	})

	suite.Run("empty cart id: error", func() {
		t := suite.T()

		_, err := suite.repo.GetCart(t.Context(), "")
		require.EqualError(t, err, "cartID is empty")
	})

	suite.Run("cart with items: ok", func() {
		t := suite.T()
		ctx := t.Context()

		ownerID := gofakeit.UUID()
		created, err := suite.repo.CreateCart(ctx, ownerID)
		require.NoError(t, err)

		items := []domain.CartItem{randomCartItem(), randomCartItem()}
		_, err = suite.repo.ReplaceItems(ctx, created.ID, ownerID, items)
		require.NoError(t, err)

		fetched, err := suite.repo.GetCart(ctx, created.ID)
		require.NoError(t, err)
		assertItems(t, items, fetched.Items)
	})
}

func (suite *cartRepositorySuite) TestReplaceItems() {
	defer suite.deleteAll()

	tests := []struct {
		name      string
		setup     bool
		items     []domain.CartItem
		wantError error
	}{
		{
			name:  "replace with new items: ok",
			setup: true,
			items: []domain.CartItem{randomCartItem(), randomCartItem()},
		},
		{
			name:  "replace with empty list clears the cart: ok",
			setup: true,
			items: []domain.CartItem{},
		},
		{
			name:      "replace on unknown cart: not found",
			setup:     false,
			items:     []domain.CartItem{randomCartItem()},
			wantError: domain.ErrCartNotFound,
		},
		{
			name:  "replace with zero quantity: invalid",
			setup: true,
			items: []domain.CartItem{
				{ProductID: gofakeit.UUID(), Quantity: 0},
			},
			wantError: domain.ErrInvalidQuantity,
		},
	}

	for _, tt := range tests {
		suite.Run(tt.name, func() {
			t := suite.T()
			ctx := t.Context()

			ownerID := gofakeit.UUID()
			cartID := gofakeit.UUID()
			if tt.setup {
				created, err := suite.repo.CreateCart(ctx, ownerID)
				require.NoError(t, err)
				cartID = created.ID

				// Pre-existing line to prove replace is a full overwrite.
				_, err = suite.repo.ReplaceItems(ctx, cartID, ownerID, []domain.CartItem{randomCartItem()})
				require.NoError(t, err)
			}

			replaced, err := suite.repo.ReplaceItems(ctx, cartID, ownerID, tt.items)
			if tt.wantError != nil {
				require.ErrorIs(t, err, tt.wantError)
				return
			}
			require.NoError(t, err)
			assertItems(t, tt.items, replaced.Items)

			fetched, err := suite.repo.GetCart(ctx, cartID)
			require.NoError(t, err)
			assertItems(t, tt.items, fetched.Items)
		})
	}
}

func (suite *cartRepositorySuite) deleteAll() {
	_, err := suite.pool.Exec(suite.T().Context(), "TRUNCATE TABLE carts CASCADE")
	suite.NoError(err)
}

func randomCartItem() domain.CartItem {
	return domain.CartItem{
		ProductID: gofakeit.UUID(),
		Quantity:  gofakeit.Number(1, 9),
	}
}

func assertItems(t *testing.T, expected, actual []domain.CartItem) {
	t.Helper()

	diff := cmp.Diff(expected, actual)
	assert.Empty(t, diff)
}
