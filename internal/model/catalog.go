package model

// DemoCatalog is inserted on first run so the dashboard has something to show.
var DemoCatalog = []Product{
	{Name: "Laptop Asus ROG", Category: "Electronics", Price: 15000000, Cost: 13000000, Stock: 15},
	{Name: "iPhone 15 Pro", Category: "Electronics", Price: 20000000, Cost: 17500000, Stock: 10},
	{Name: "Mouse Logitech G502", Category: "Accessories", Price: 850000, Cost: 650000, Stock: 50},
	{Name: "Keyboard Mechanical RGB", Category: "Accessories", Price: 750000, Cost: 500000, Stock: 40},
	{Name: "Monitor Samsung 27 inch", Category: "Electronics", Price: 3500000, Cost: 2800000, Stock: 20},
	{Name: "Headphone Sony WH-1000XM5", Category: "Accessories", Price: 4500000, Cost: 3500000, Stock: 25},
	{Name: "SSD Samsung 1TB", Category: "Components", Price: 1500000, Cost: 1100000, Stock: 35},
	{Name: "RAM DDR5 32GB", Category: "Components", Price: 2000000, Cost: 1500000, Stock: 30},
	{Name: "Webcam Logitech C920", Category: "Accessories", Price: 1200000, Cost: 900000, Stock: 45},
	{Name: "Printer Epson L3250", Category: "Electronics", Price: 3200000, Cost: 2600000, Stock: 15},
}
