package model

// Student belongs to exactly one tutor. StudentAsist is the daily attendance
// flag the tutor toggles before pickup.
type Student struct {
	StudentID      int    `db:"student_id" json:"student_id"`
	StudentNombre  string `db:"student_nombre" json:"student_nombre"`
	StudentSurname string `db:"student_surname" json:"student_surname"`
	Rut            string `db:"rut" json:"rut"`
	StudentSchool  string `db:"student_school" json:"student_school"`
	StudentHome    string `db:"student_home" json:"student_home"`
	StudentAsist   bool   `db:"student_asist" json:"student_asist"`
	TutorID        int    `db:"fk_tutor_id" json:"fk_tutor_id"`
}
