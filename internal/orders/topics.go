package orders

// TopicOrdersChanged is the single change-feed topic: any insert or
// update to the orders table produces one event here, and every
// consumer answers with a full reload.
const TopicOrdersChanged = "orders.changed"

// Partition key = order id, so all events of one order stay ordered.
func PartitionKey(orderID string) []byte { return []byte(orderID) }
