// Package icsexport выгружает день мастера в формате iCalendar (RFC 5545)
package icsexport

import (
	"fmt"
	"time"

	ical "github.com/arran4/golang-ical"

	"github.com/m04kA/SMC-CalendarService/internal/domain"
)

const (
	DefaultProductID = "-//SMC//CalendarService//RU"
	DefaultUIDDomain = "calendar.smc"

	categoryAppointment = "APPOINTMENT"
	categoryBlock       = "BLOCK"
)

// Options параметры выгрузки
type Options struct {
	ProductID string
	UIDDomain string
	Now       time.Time // DTSTAMP
}

// Export строит календарь с событиями мастера. Телефон клиента в выгрузку не попадает
func Export(technician domain.Technician, events []domain.CalendarEvent, opts Options) string {
	if opts.ProductID == "" {
		opts.ProductID = DefaultProductID
	}
	if opts.UIDDomain == "" {
		opts.UIDDomain = DefaultUIDDomain
	}
	if opts.Now.IsZero() {
		opts.Now = time.Now()
	}

	cal := ical.NewCalendar()
	cal.SetMethod(ical.MethodPublish)
	cal.SetProductId(opts.ProductID)
	cal.SetXWRCalName(technician.Name)

	for _, e := range events {
		if e.TechnicianID != technician.ID {
			continue
		}

		ve := cal.AddEvent(UID(e.Ref, opts.UIDDomain))
		ve.SetDtStampTime(opts.Now)
		ve.SetStartAt(e.Start)
		ve.SetEndAt(e.End)
		ve.SetSummary(e.Title())

		switch p := e.Payload.(type) {
		case *domain.Appointment:
			ve.SetProperty(ical.ComponentPropertyCategories, categoryAppointment)
			ve.SetProperty(ical.ComponentPropertyStatus, appointmentStatus(p.Status))
			if p.Notes != nil && *p.Notes != "" {
				ve.SetDescription(*p.Notes)
			}
		case *domain.TechnicianBlock:
			ve.SetProperty(ical.ComponentPropertyCategories, categoryBlock)
			ve.SetDescription(string(p.BlockType))
		}
	}

	return cal.Serialize()
}

// UID уникальный идентификатор события в выгрузке. Вхождения повторяющегося
// блока получают суффикс с началом вхождения
func UID(ref domain.EventRef, uidDomain string) string {
	if ref.Occurrence != 0 {
		return fmt.Sprintf("%s-%d-%d@%s", ref.Kind, ref.ID, ref.Occurrence, uidDomain)
	}
	return fmt.Sprintf("%s-%d@%s", ref.Kind, ref.ID, uidDomain)
}

func appointmentStatus(s domain.AppointmentStatus) string {
	switch s {
	case domain.AppointmentScheduled:
		return "TENTATIVE"
	case domain.AppointmentCancelled, domain.AppointmentNoShow:
		return "CANCELLED"
	default:
		return "CONFIRMED"
	}
}
