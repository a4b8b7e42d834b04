package ui

import crashapp "github.com/skobkin/crashboard/internal/app"

func BuildRuntimeDependencies(rt *crashapp.Runtime, launch LaunchOptions, onQuit func()) RuntimeDependencies {
	dep := RuntimeDependencies{
		Launch: launch,
		Actions: ActionDependencies{
			OnQuit: onQuit,
		},
	}
	if rt == nil {
		return dep
	}

	dep.Data = DataDependencies{
		Config:            rt.CurrentConfig(),
		Bus:               rt.Bus,
		CurrentConfig:     rt.CurrentConfig,
		CurrentConnStatus: rt.CurrentConnStatus,
		LastCrash:         rt.LastCrash,
	}
	dep.Actions.SendCommand = rt.SendCommand
	dep.Actions.OnSave = rt.SaveAndApplyConfig

	return dep
}
