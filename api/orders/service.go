package orders

import (
	"HTXErp/internal/planledger"
	"HTXErp/internal/serviceiface"
	"HTXErp/internal/store"
)

type OrdersService struct {
	config map[string]interface{}
	store  store.Store
	docs   *planledger.DocumentStore
}

func NewOrdersService(cfg map[string]interface{}, st store.Store, docs *planledger.DocumentStore) serviceiface.Service {
	return &OrdersService{config: cfg, store: st, docs: docs}
}

func (s *OrdersService) Name() string {
	return "orders"
}

func (s *OrdersService) Start() error {
	go StartOrdersService(s.store, s.docs)
	return nil
}

func (s *OrdersService) Stop() error {
	return nil
}
