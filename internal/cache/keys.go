package cache

import "fmt"

// Key builders shared by the services and the invalidation policy. One
// place so an eviction can never drift from the key a read populated.

func OrderItemKey(id int) string { return fmt.Sprintf("orderItem:%d", id) }

func OrderItemsByOrder(orderID int) string { return fmt.Sprintf("order:%d:orderItem", orderID) }

func OrderItemsByProduct(productID int) string { return fmt.Sprintf("product:%d:orderItem", productID) }

func OrderKey(id int) string { return fmt.Sprintf("order:%d", id) }

func OrdersByCustomer(customerID int) string { return fmt.Sprintf("customer:%d:orders", customerID) }

func ProductKey(id int) string { return fmt.Sprintf("product:%d", id) }

func InventoryKey(id int) string { return fmt.Sprintf("inventory:%d", id) }

func CustomerKey(id int) string { return fmt.Sprintf("customer:%d", id) }

const (
	InventoriesKey = "inventories"
	CategoriesKey  = "categories"
)
