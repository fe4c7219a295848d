package dash

import (
	"HTXErp/internal/planledger"
	"HTXErp/internal/serviceiface"
)

type DashService struct {
	config map[string]interface{}
	rollup *planledger.RollupEngine
}

func NewDashService(cfg map[string]interface{}, rollup *planledger.RollupEngine) serviceiface.Service {
	return &DashService{config: cfg, rollup: rollup}
}

func (s *DashService) Name() string {
	return "dash"
}

func (s *DashService) Start() error {
	go StartDashService(s.rollup)
	return nil
}

func (s *DashService) Stop() error {
	return nil
}
