package stream

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/storefront/client/internal/domain/catalog"
	"github.com/storefront/client/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestCodec_DecodeProductUpdated(t *testing.T) {
	c := NewCodec()
	id := uuid.New()

	frame := fmt.Sprintf(`{"event":"product:updated","data":{"id":%q,"name":"Bàn gỗ","price":"2400000","status":"active"}}`, id)
	event, err := c.Decode([]byte(frame))
	require.NoError(t, err)

	updated, ok := event.(*catalog.ProductUpdatedEvent)
	require.True(t, ok)
	assert.Equal(t, id, updated.Product.ID)
	assert.Equal(t, "Bàn gỗ", updated.Product.Name)
	assert.Equal(t, catalog.EventProductUpdated, event.EventName())
}

func TestCodec_DecodeCategoryDeleted(t *testing.T) {
	c := NewCodec()
	id := uuid.New()

	frame := fmt.Sprintf(`{"event":"category:deleted","data":{"id":%q}}`, id)
	event, err := c.Decode([]byte(frame))
	require.NoError(t, err)

	deleted, ok := event.(*catalog.CategoryDeletedEvent)
	require.True(t, ok)
	assert.Equal(t, id, deleted.CategoryID)
}

func TestCodec_DecodeVariantDeletedRequiresProductID(t *testing.T) {
	c := NewCodec()
	id := uuid.New()

	frame := fmt.Sprintf(`{"event":"variant:deleted","data":{"id":%q}}`, id)
	_, err := c.Decode([]byte(frame))
	require.Error(t, err)
	assert.True(t, errors.Is(err, shared.ErrMalformedPayload))

	frame = fmt.Sprintf(`{"event":"variant:deleted","data":{"id":%q,"productId":%q}}`, id, uuid.New())
	event, err := c.Decode([]byte(frame))
	require.NoError(t, err)
	require.IsType(t, &catalog.VariantDeletedEvent{}, event)
}

func TestCodec_RejectsMissingID(t *testing.T) {
	c := NewCodec()

	tests := []struct {
		name  string
		frame string
	}{
		{"product without id", `{"event":"product:created","data":{"name":"Ghế"}}`},
		{"deletion without id", `{"event":"product:deleted","data":{}}`},
		{"category without id", `{"event":"category:updated","data":{"name":"Sofa"}}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := c.Decode([]byte(tt.frame))
			require.Error(t, err)
			assert.True(t, errors.Is(err, shared.ErrMalformedPayload))
		})
	}
}

func TestCodec_UnknownEvent(t *testing.T) {
	c := NewCodec()

	_, err := c.Decode([]byte(`{"event":"warehouse:moved","data":{}}`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown event type")
}

func TestCodec_MalformedFrame(t *testing.T) {
	c := NewCodec()

	_, err := c.Decode([]byte(`not json`))
	require.Error(t, err)

	_, err = c.Decode([]byte(`{"data":{}}`))
	require.Error(t, err)
	assert.True(t, errors.Is(err, shared.ErrMalformedPayload))
}

func TestCodec_RegistersAllCatalogEvents(t *testing.T) {
	c := NewCodec()

	for _, name := range []string{
		catalog.EventProductCreated, catalog.EventProductUpdated, catalog.EventProductDeleted,
		catalog.EventCategoryCreated, catalog.EventCategoryUpdated, catalog.EventCategoryDeleted,
		catalog.EventVariantCreated, catalog.EventVariantUpdated, catalog.EventVariantDeleted,
	} {
		assert.True(t, c.IsRegistered(name), name)
	}
}

func TestClient_HandleMessageDropsUndecodable(t *testing.T) {
	c := NewClient(Options{Addr: "localhost:6379", ChannelPrefix: "storefront"}, zap.NewNop())

	var calls int
	c.On(catalog.EventProductUpdated, func(_ context.Context, _ shared.Event) { calls++ })

	// A bad frame is dropped before the dispatcher sees it
	c.handleMessage(context.Background(), []byte(`{"event":"product:updated","data":{"name":"no id"}}`))
	assert.Zero(t, calls)

	frame := fmt.Sprintf(`{"event":"product:updated","data":{"id":%q,"name":"Bàn"}}`, uuid.New())
	c.handleMessage(context.Background(), []byte(frame))
	assert.Equal(t, 1, calls)
}
