package cart

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testItem(name string, price int64, stock int) Item {
	return Item{
		ProductID:   uuid.New(),
		ProductName: name,
		UnitPrice:   price,
		Stock:       stock,
	}
}

func TestAddItem(t *testing.T) {
	c := New()
	coffee := testItem("Coffee", 15000, 10)

	assert.Equal(t, ResultAdded, c.AddItem(coffee, 1))
	assert.Equal(t, 1, c.Len())

	// Adding the same product merges into the existing line.
	assert.Equal(t, ResultUpdated, c.AddItem(coffee, 2))
	assert.Equal(t, 1, c.Len())

	line, ok := c.Item(coffee.ProductID)
	require.True(t, ok)
	assert.Equal(t, 3, line.Quantity)
}

func TestAddItemDefaultsQuantityToOne(t *testing.T) {
	c := New()
	item := testItem("Tea", 8000, 5)

	c.AddItem(item, 0)

	line, ok := c.Item(item.ProductID)
	require.True(t, ok)
	assert.Equal(t, 1, line.Quantity)
}

func TestAddBeyondStockIsNoOp(t *testing.T) {
	c := New()
	item := testItem("Soda", 5000, 2)

	require.Equal(t, ResultAdded, c.AddItem(item, 2))
	before := c.Items()

	// Line is at its ceiling: another add changes nothing, not even clamped.
	assert.Equal(t, ResultStockExceeded, c.AddItem(item, 1))
	assert.Equal(t, before, c.Items())
	assert.Equal(t, int64(10000), c.Subtotal())
}

func TestAddNewItemBeyondStockIsNoOp(t *testing.T) {
	c := New()
	item := testItem("Soda", 5000, 2)

	assert.Equal(t, ResultStockExceeded, c.AddItem(item, 3))
	assert.True(t, c.IsEmpty())
}

func TestStockCeilingInvariant(t *testing.T) {
	c := New()
	a := testItem("A", 1000, 3)
	b := testItem("B", 2000, 1)

	// The third, fourth and sixth ops would exceed stock; the last one lands
	// exactly at the ceiling.
	ops := []func(){
		func() { c.AddItem(a, 2) },
		func() { c.AddItem(b, 1) },
		func() { c.AddItem(a, 2) },
		func() { c.AddItem(b, 5) },
		func() { c.UpdateQuantity(a.ProductID, 3) },
		func() { c.UpdateQuantity(a.ProductID, 4) },
		func() { c.AddItem(a, 1) },
	}
	for _, op := range ops {
		op()
		for _, line := range c.Items() {
			assert.LessOrEqual(t, line.Quantity, line.Stock)
			assert.GreaterOrEqual(t, line.Quantity, 1)
		}
	}
}

func TestUpdateQuantity(t *testing.T) {
	c := New()
	item := testItem("Milk", 12000, 8)
	c.AddItem(item, 1)

	assert.Equal(t, ResultUpdated, c.UpdateQuantity(item.ProductID, 5))
	line, _ := c.Item(item.ProductID)
	assert.Equal(t, 5, line.Quantity)

	// Exceeding stock leaves the previous quantity in place.
	assert.Equal(t, ResultStockExceeded, c.UpdateQuantity(item.ProductID, 9))
	line, _ = c.Item(item.ProductID)
	assert.Equal(t, 5, line.Quantity)
}

func TestUpdateQuantityZeroOrNegativeRemovesLine(t *testing.T) {
	for _, qty := range []int{0, -1} {
		c := New()
		item := testItem("Milk", 12000, 8)
		c.AddItem(item, 3)

		assert.Equal(t, ResultRemoved, c.UpdateQuantity(item.ProductID, qty))
		_, ok := c.Item(item.ProductID)
		assert.False(t, ok)
	}
}

func TestRemoveItemIdempotent(t *testing.T) {
	c := New()
	item := testItem("Bread", 20000, 4)
	c.AddItem(item, 1)

	assert.Equal(t, ResultRemoved, c.RemoveItem(item.ProductID))
	assert.Equal(t, 0, c.Len())

	// Removing again (or removing an unknown product) changes nothing.
	assert.Equal(t, ResultNotInCart, c.RemoveItem(item.ProductID))
	assert.Equal(t, ResultNotInCart, c.RemoveItem(uuid.New()))
	assert.Equal(t, 0, c.Len())
}

func TestClearIsAtomic(t *testing.T) {
	c := New()
	c.AddItem(testItem("Eggs", 30000, 12), 2)
	c.SetCustomer(&Customer{ID: uuid.New(), MemberCode: "MBR-TEST", Name: "Dewi"})

	c.Clear()

	assert.True(t, c.IsEmpty())
	assert.Nil(t, c.Customer())
	assert.False(t, c.IsMember())
}

func TestSetCustomerDoesNotTouchItems(t *testing.T) {
	c := New()
	item := testItem("Rice", 60000, 20)
	c.AddItem(item, 4)

	c.SetCustomer(&Customer{ID: uuid.New(), Name: "Budi"})
	assert.True(t, c.IsMember())
	line, _ := c.Item(item.ProductID)
	assert.Equal(t, 4, line.Quantity)

	c.SetCustomer(nil)
	assert.False(t, c.IsMember())
	assert.Equal(t, 1, c.Len())
}

func TestSubtotalAndItemCount(t *testing.T) {
	c := New()
	assert.Equal(t, int64(0), c.Subtotal())

	c.AddItem(testItem("A", 1500, 10), 2)
	c.AddItem(testItem("B", 700, 10), 3)

	assert.Equal(t, int64(2*1500+3*700), c.Subtotal())
	assert.Equal(t, 5, c.ItemCount())
}

func TestItemsReturnsCopy(t *testing.T) {
	c := New()
	item := testItem("A", 1000, 5)
	c.AddItem(item, 1)

	items := c.Items()
	items[0].Quantity = 99

	line, _ := c.Item(item.ProductID)
	assert.Equal(t, 1, line.Quantity)
}
