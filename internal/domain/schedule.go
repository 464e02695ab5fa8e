package domain

import (
	"fmt"
	"strings"
	"time"
)

// DayOfWeek es el dia de la semana de un horario, siempre en mayusculas.
type DayOfWeek string

const (
	Lunes     DayOfWeek = "LUNES"
	Martes    DayOfWeek = "MARTES"
	Miercoles DayOfWeek = "MIERCOLES"
	Jueves    DayOfWeek = "JUEVES"
	Viernes   DayOfWeek = "VIERNES"
	Sabado    DayOfWeek = "SABADO"
	Domingo   DayOfWeek = "DOMINGO"
)

var weekdays = []DayOfWeek{Lunes, Martes, Miercoles, Jueves, Viernes, Sabado, Domingo}

// ParseDayOfWeek normaliza a mayusculas y valida contra los 7 dias.
func ParseDayOfWeek(raw string) (DayOfWeek, bool) {
	day := DayOfWeek(strings.ToUpper(strings.TrimSpace(raw)))
	for _, d := range weekdays {
		if d == day {
			return day, true
		}
	}
	return "", false
}

// ClockTime es una hora de pared "HH:MM" sin zona horaria, en minutos desde medianoche.
type ClockTime int

// ParseClockTime acepta "HH:MM" (00:00 a 23:59).
func ParseClockTime(raw string) (ClockTime, error) {
	t, err := time.Parse("15:04", strings.TrimSpace(raw))
	if err != nil {
		return 0, fmt.Errorf("invalid time %q: expected HH:MM", raw)
	}
	return ClockTime(t.Hour()*60 + t.Minute()), nil
}

func (c ClockTime) String() string {
	return fmt.Sprintf("%02d:%02d", int(c)/60, int(c)%60)
}

// Modality indica como se dicta la clase.
type Modality string

const (
	ModalityPresencial Modality = "PRESENCIAL"
	ModalityVirtual    Modality = "VIRTUAL"
	ModalityHibrido    Modality = "HIBRIDO"
)

// ParseModality acepta vacio (sin modalidad) o una de las conocidas.
func ParseModality(raw string) (Modality, bool) {
	m := Modality(strings.ToUpper(strings.TrimSpace(raw)))
	switch m {
	case "", ModalityPresencial, ModalityVirtual, ModalityHibrido:
		return m, true
	}
	return "", false
}

// Schedule es un bloque semanal de clase de un curso.
type Schedule struct {
	ID        string    `json:"id"`
	CourseID  string    `json:"courseId"`
	CycleID   *string   `json:"cycleId,omitempty"`
	DayOfWeek DayOfWeek `json:"dayOfWeek"`
	StartTime string    `json:"startTime"`
	EndTime   string    `json:"endTime"`
	Room      string    `json:"room,omitempty"`
	Modality  Modality  `json:"modality,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Overlaps aplica la prueba de intervalos semiabiertos [s1,e1) y [s2,e2):
// se solapan si s1 < e2 y s2 < e1. Horas mal formadas nunca se solapan.
func (s Schedule) Overlaps(start, end ClockTime) bool {
	s1, err := ParseClockTime(s.StartTime)
	if err != nil {
		return false
	}
	e1, err := ParseClockTime(s.EndTime)
	if err != nil {
		return false
	}
	return s1 < end && start < e1
}
