package clinic

// ReferenceReport lists identifier references that no longer resolve. The
// store never enforces integrity itself; deleting a patient intentionally
// leaves their appointments and payments in place.
type ReferenceReport struct {
	OrphanedAppointments []int64 `json:"orphaned_appointments"`
	OrphanedPayments     []int64 `json:"orphaned_payments"`
	UnknownDoctorRefs    []int64 `json:"unknown_doctor_refs"`
}

func (r ReferenceReport) Clean() bool {
	return len(r.OrphanedAppointments) == 0 &&
		len(r.OrphanedPayments) == 0 &&
		len(r.UnknownDoctorRefs) == 0
}

// CheckReferences scans for appointments and payments whose patient no
// longer exists and appointments pointing at unknown doctors.
func (s *Store) CheckReferences() ReferenceReport {
	s.mu.Lock()
	defer s.mu.Unlock()

	patientIDs := make(map[int64]struct{}, len(s.patients))
	for _, p := range s.patients {
		patientIDs[p.ID] = struct{}{}
	}
	doctorIDs := make(map[int64]struct{}, len(s.doctors))
	for _, d := range s.doctors {
		doctorIDs[d.ID] = struct{}{}
	}

	var report ReferenceReport
	for _, a := range s.appointments {
		if _, ok := patientIDs[a.PatientID]; !ok {
			report.OrphanedAppointments = append(report.OrphanedAppointments, a.ID)
		}
		if _, ok := doctorIDs[a.DoctorID]; !ok {
			report.UnknownDoctorRefs = append(report.UnknownDoctorRefs, a.ID)
		}
	}
	for _, p := range s.payments {
		if _, ok := patientIDs[p.PatientID]; !ok {
			report.OrphanedPayments = append(report.OrphanedPayments, p.ID)
		}
	}
	return report
}
