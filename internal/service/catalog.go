// catalog.go — публичный каталог типовых позиций.
package service

import (
	"sort"
	"strings"
)

// CatalogItem — позиция каталога.
type CatalogItem struct {
	ID              string
	Nombre          string
	Imagen          string
	Caracteristicas []string
}

// CatalogService — неизменяемый каталог, поиск по названию.
type CatalogService struct {
	items map[string]CatalogItem
	order []string
}

// NewCatalogService создаёт каталог со встроенными позициями.
func NewCatalogService() *CatalogService {
	return newCatalog(defaultCatalog())
}

func newCatalog(items []CatalogItem) *CatalogService {
	c := &CatalogService{items: make(map[string]CatalogItem, len(items))}
	for _, it := range items {
		c.items[it.ID] = it
		c.order = append(c.order, it.ID)
	}
	sort.Strings(c.order)
	return c
}

// Search возвращает позиции, название или id которых содержит q (без учёта регистра).
// Пустой q — весь каталог.
func (c *CatalogService) Search(q string) []CatalogItem {
	q = strings.ToLower(strings.TrimSpace(q))
	out := make([]CatalogItem, 0, len(c.order))
	for _, id := range c.order {
		it := c.items[id]
		if q == "" || strings.Contains(strings.ToLower(it.Nombre), q) || strings.Contains(it.ID, q) {
			out = append(out, it)
		}
	}
	return out
}

// Get возвращает позицию по id.
func (c *CatalogService) Get(id string) (CatalogItem, bool) {
	it, ok := c.items[id]
	return it, ok
}

func defaultCatalog() []CatalogItem {
	return []CatalogItem{
		{
			ID:     "malinois",
			Nombre: "Pastor Belga Malinois",
			Imagen: "img/malinois.png",
			Caracteristicas: []string{
				"Peso: 30 kg",
				"Altura: 60 cm",
				"Especialidad: Detección de narcóticos",
				"País de origen: Bélgica",
			},
		},
		{
			ID:     "golden",
			Nombre: "Golden Retriever",
			Imagen: "img/golden.png",
			Caracteristicas: []string{
				"Peso: 35 kg",
				"Altura: 55 cm",
				"Especialidad: Terapia asistida",
				"Carácter: Amigable",
			},
		},
		{
			ID:     "camiones",
			Nombre: "Camión Iveco 4x4",
			Imagen: "img/camion.png",
			Caracteristicas: []string{
				"Capacidad: 10 toneladas",
				"Combustible: Diésel",
				"Uso: Transporte logístico pesado",
				"Marca: Iveco",
			},
		},
		{
			ID:     "camionetas",
			Nombre: "Camioneta Toyota Hilux",
			Imagen: "img/hilux.png",
			Caracteristicas: []string{
				"Motor: 2.8L Turbo",
				"Tracción: 4x4",
				"Capacidad: 5 pasajeros",
				"Uso: Transporte operativo",
			},
		},
		{
			ID:     "laptops",
			Nombre: "Laptop HP ProBook",
			Imagen: "img/laptop.png",
			Caracteristicas: []string{
				"Procesador: Intel i5",
				"RAM: 8 GB",
				"Disco: SSD 512 GB",
				"Sistema: Windows 11",
			},
		},
		{
			ID:     "impresoras",
			Nombre: "Impresora Epson L3250",
			Imagen: "img/epson.png",
			Caracteristicas: []string{
				"Tipo: Inyección de tinta",
				"Conectividad: Wi-Fi",
				"Velocidad: 33 ppm",
				"Formato: A4",
			},
		},
	}
}
