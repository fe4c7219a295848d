package master

import (
	"HTXErp/internal/serviceiface"
	"HTXErp/internal/store"
)

type MasterService struct {
	config map[string]interface{}
	store  store.Store
}

func NewMasterService(cfg map[string]interface{}, st store.Store) serviceiface.Service {
	return &MasterService{config: cfg, store: st}
}

func (s *MasterService) Name() string {
	return "master"
}

func (s *MasterService) Start() error {
	go StartMasterService(s.store)
	return nil
}

func (s *MasterService) Stop() error {
	return nil
}
