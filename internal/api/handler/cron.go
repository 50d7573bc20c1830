package handler

import (
	"net/http"
	"sort"

	"github.com/julienschmidt/httprouter"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/lead-tracker-api/internal/scheduler"
	"github.com/vfg2006/lead-tracker-api/pkg/apiErrors"
)

// CronJobTypeAll dispara todas as rotinas registradas
const CronJobTypeAll = "all"

// CronJobServices mapeia o tipo de cron job para a rotina que pode ser executada manualmente
type CronJobServices map[string]scheduler.Job

func (s CronJobServices) types() []string {
	types := make([]string, 0, len(s))
	for jobType := range s {
		types = append(types, jobType)
	}
	sort.Strings(types)
	return types
}

// RunCronJob executa manualmente uma cron job específica
func RunCronJob(services CronJobServices) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		cronType := httprouter.ParamsFromContext(r.Context()).ByName("type")
		if cronType == "" {
			apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "Tipo de cron job não especificado", nil)
			return
		}

		logrus.WithField("job", cronType).Info("Execução manual de cron job solicitada")

		if cronType == CronJobTypeAll {
			for _, jobType := range services.types() {
				services[jobType].TriggerManualSync()
			}
		} else {
			job, ok := services[cronType]
			if !ok || job == nil {
				apiErrors.WriteError(w, apiErrors.ErrCronJobNotFound, "Tipo de cron job inválido", map[string]any{
					"accepted": append(services.types(), CronJobTypeAll),
				})
				return
			}
			job.TriggerManualSync()
		}

		writeJSON(w, http.StatusAccepted, map[string]any{
			"message": "Cron job iniciada com sucesso",
			"type":    cronType,
		})
	}
}

// GetCronStatus retorna o status das cron jobs
func GetCronStatus(services CronJobServices) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		status := make(map[string]any, len(services))
		for jobType, job := range services {
			status[jobType] = job.GetStatus()
		}

		writeJSON(w, http.StatusOK, status)
	}
}
