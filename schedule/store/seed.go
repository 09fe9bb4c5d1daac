package store

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/greenops/mowing-engine/schedule"
)

// SeedDemo loads a small set of Londrina service areas and teams into a
// memory repository. Development only; production data comes from the
// ingestion pipeline.
func SeedDemo(m *Memory) error {
	ctx := context.Background()

	areas := []schedule.ServiceArea{
		{ID: 1, Order: 1, Type: "area publica", Address: "Av Jorge Casoni - Terminal Rodoviário", District: "Casoni", SurfaceM2: decimal.NewFromFloat(29184.98), Lat: -23.3044206, Lng: -51.1513729, Lot: 1, Service: schedule.ServiceMowing, Status: schedule.StatusPending},
		{ID: 2, Order: 2, Type: "praça", Address: "Rua Carijós c/ Oraruana", District: "Paraná", SurfaceM2: decimal.NewFromFloat(2332.83), Lat: -23.3045262, Lng: -51.1480067, Lot: 1, Service: schedule.ServiceMowing, Status: schedule.StatusPending},
		{ID: 3, Order: 3, Type: "canteiro", Address: "Av Madre Leônia Milito", District: "Centro", SurfaceM2: decimal.NewFromFloat(8765.43), Lat: -23.3101, Lng: -51.1628, Lot: 1, Service: schedule.ServiceMowing, Status: schedule.StatusPending},
		{ID: 4, Order: 4, Type: "area publica", Address: "Parque Arthur Thomas", District: "Nova Londrina", SurfaceM2: decimal.NewFromFloat(45678.90), Lat: -23.3167, Lng: -51.1789, Lot: 1, Service: schedule.ServiceMowing, Status: schedule.StatusPending},
		{ID: 101, Order: 1, Type: "area publica", Address: "Av Duque de Caxias", District: "Zona Sul", SurfaceM2: decimal.NewFromFloat(32145.67), Lat: -23.3367, Lng: -51.1534, Lot: 2, Service: schedule.ServiceMowing, Status: schedule.StatusPending},
		{ID: 102, Order: 2, Type: "canteiro", Address: "Av Inglaterra", District: "Cinco Conjuntos", SurfaceM2: decimal.NewFromFloat(11234.56), Lat: -23.3278, Lng: -51.1745, Lot: 2, Service: schedule.ServiceMowing, Status: schedule.StatusPending},
		{ID: 103, Order: 3, Type: "praça", Address: "Praça Maringá", District: "Cervejaria", SurfaceM2: decimal.NewFromFloat(8765.43), Lat: -23.3189, Lng: -51.1667, Lot: 2, Service: schedule.ServiceMowing, Status: schedule.StatusPending},
		{ID: 1001, Order: 1, Type: "ROT", Address: "Av. Maringá x Rua Prof. Joaquim de Matos Barreto", District: "Centro", Lat: -23.324934, Lng: -51.176449, Service: schedule.ServiceGardens, Status: schedule.StatusPending},
	}
	for _, a := range areas {
		if _, err := m.CreateArea(ctx, a); err != nil {
			return err
		}
	}

	teams := []schedule.Team{
		{ID: 1, Service: schedule.ServiceMowing, Type: "Giro Zero", Lot: 1, Status: schedule.TeamIdle, Location: schedule.LatLng{Lat: -23.3099, Lng: -51.1603}},
		{ID: 2, Service: schedule.ServiceMowing, Type: "Acabamento", Lot: 1, Status: schedule.TeamIdle, Location: schedule.LatLng{Lat: -23.30, Lng: -51.15}},
		{ID: 3, Service: schedule.ServiceMowing, Type: "Giro Zero", Lot: 2, Status: schedule.TeamIdle, Location: schedule.LatLng{Lat: -23.2989, Lng: -51.1823}},
		{ID: 4, Service: schedule.ServiceGardens, Type: "Manutenção", Status: schedule.TeamIdle, Location: schedule.LatLng{Lat: -23.32, Lng: -51.17}},
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range teams {
		t := teams[i]
		m.teams[t.ID] = &t
	}
	return nil
}
