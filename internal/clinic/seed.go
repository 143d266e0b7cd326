package clinic

import "time"

// seedDoctors returns the fixed clinic roster. Doctors have no create,
// update, or delete path and are reseeded on every start.
func seedDoctors() []Doctor {
	return []Doctor{
		{ID: 1, Name: "Dr. Sarah Smith", Specialty: "Cardiology", Availability: []string{"Monday", "Wednesday", "Friday"}},
		{ID: 2, Name: "Dr. Michael Johnson", Specialty: "Pediatrics", Availability: []string{"Tuesday", "Thursday", "Saturday"}},
		{ID: 3, Name: "Dr. Emily Williams", Specialty: "Orthopedics", Availability: []string{"Monday", "Tuesday", "Friday"}},
		{ID: 4, Name: "Dr. David Brown", Specialty: "Neurology", Availability: []string{"Wednesday", "Thursday", "Saturday"}},
		{ID: 5, Name: "Dr. Lisa Garcia", Specialty: "Dermatology", Availability: []string{"Monday", "Wednesday", "Saturday"}},
	}
}

// SeedSampleData installs the sample patients, appointments, and payments a
// fresh install starts with. A successfully loaded snapshot replaces them.
func (s *Store) SeedSampleData() {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()

	s.patients = []Patient{
		{ID: 1, FirstName: "John", LastName: "Doe", City: "New York", Phone: "555-0101", Email: "john.doe@email.com", DateOfBirth: "1985-03-15", CreatedAt: now},
		{ID: 2, FirstName: "Jane", LastName: "Smith", City: "Los Angeles", Phone: "555-0102", Email: "jane.smith@email.com", DateOfBirth: "1990-07-22", CreatedAt: now},
		{ID: 3, FirstName: "Mike", LastName: "Johnson", City: "Chicago", Phone: "555-0103", Email: "mike.johnson@email.com", DateOfBirth: "1988-11-08", CreatedAt: now},
	}

	s.appointments = []Appointment{
		{ID: 1, PatientID: 1, DoctorID: 1, Date: "2024-01-15T10:00", Status: AppointmentScheduled, Notes: "Regular checkup", CreatedAt: now},
		{ID: 2, PatientID: 2, DoctorID: 3, Date: "2024-01-16T14:30", Status: AppointmentCompleted, Notes: "Follow-up appointment", CreatedAt: now},
	}

	s.payments = []Payment{
		{ID: 1, PatientID: 1, Amount: 150.00, Status: PaymentCompleted, Method: MethodCreditCard, Date: now},
		{ID: 2, PatientID: 2, Amount: 200.00, Status: PaymentCompleted, Method: MethodInsurance, Date: now},
	}
}
