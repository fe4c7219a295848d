package ledger

import (
	"HTXErp/internal/planledger"
	"HTXErp/internal/serviceiface"
)

type LedgerService struct {
	config  map[string]interface{}
	planner *planledger.Planner
}

func NewLedgerService(cfg map[string]interface{}, planner *planledger.Planner) serviceiface.Service {
	return &LedgerService{config: cfg, planner: planner}
}

func (s *LedgerService) Name() string {
	return "ledger"
}

func (s *LedgerService) Start() error {
	go StartLedgerService(s.planner)
	return nil
}

func (s *LedgerService) Stop() error {
	return nil
}
