package permission

import (
	"thesis-management-backend/app/model"
	"thesis-management-backend/utils"
)

// Action adalah jenis operasi yang dicek oleh permission engine.
type Action string

const (
	ActionCreate Action = "create"
	ActionRead   Action = "read"
	ActionUpdate Action = "update"
	ActionDelete Action = "delete"
)

// Subject adalah jenis entity yang menjadi objek operasi.
type Subject string

const (
	SubjectStudent    Subject = "student"
	SubjectLecturer   Subject = "lecturer"
	SubjectSupervisor Subject = "supervisor"
	SubjectExaminer   Subject = "examiner"
	SubjectSubmission Subject = "submission"
	SubjectNomination Subject = "nomination"
	SubjectViva       Subject = "viva"
	SubjectProject    Subject = "project"
	SubjectFile       Subject = "file"
)

// Actor adalah user terautentikasi beserta seluruh profil role-nya.
// Profil di-resolve dari database per request (bukan dari isi token) supaya
// promosi capability langsung berlaku. Kehadiran pointer = kepemilikan role;
// tidak ada pengecekan field nil bertingkat di luar package ini.
type Actor struct {
	User     model.User
	Student  *model.Student
	Lecturer *model.Lecturer // Supervisor/Examiner harus sudah di-preload
}

func (a Actor) IsStudent() bool  { return a.Student != nil }
func (a Actor) IsLecturer() bool { return a.Lecturer != nil }

func (a Actor) IsSupervisor() bool {
	return a.Lecturer != nil && a.Lecturer.Supervisor != nil
}

func (a Actor) IsExaminer() bool {
	return a.Lecturer != nil && a.Lecturer.Examiner != nil
}

// predicate mengecek apakah rule berlaku untuk record tertentu.
// nil berarti rule berlaku untuk semua record subject tersebut.
type predicate func(a Actor, record interface{}) bool

type rule struct {
	action  Action
	subject Subject
	deny    bool
	pred    predicate
}

// Can mengevaluasi apakah actor boleh melakukan action terhadap record.
// Rule dievaluasi sebagai union aditif antar role; rule deny selalu menang
// (dipakai untuk mempersempit, contoh: mahasiswa tidak pernah boleh
// membuat/mengubah Project). record == nil berarti pengecekan "terhadap
// semua record" (misal endpoint list): rule yang ber-scope record tidak
// bisa meloloskannya, hanya grant tanpa predicate yang berlaku.
func (a Actor) Can(action Action, subject Subject, record interface{}) bool {
	allowed := false
	for _, r := range rulesFor(a) {
		if r.action != action || r.subject != subject {
			continue
		}
		if r.pred != nil {
			if record == nil || !r.pred(a, record) {
				continue
			}
		}
		if r.deny {
			return false
		}
		allowed = true
	}
	return allowed
}

// Require sama dengan Can tetapi mengembalikan AuthorizationError saat ditolak,
// supaya service bisa langsung mengalirkan error ke transport layer.
func (a Actor) Require(action Action, subject Subject, record interface{}) error {
	if !a.Can(action, subject, record) {
		return utils.NewAuthorizationError(
			"You are not allowed to " + string(action) + " this " + string(subject))
	}
	return nil
}

// rulesFor membangun rule set untuk 1 actor. Tabelnya mengikuti matriks
// grant per role: baseline read untuk dosen, scope kepemilikan untuk
// mahasiswa, dan scope keterlibatan untuk supervisor/examiner.
func rulesFor(a Actor) []rule {
	var rules []rule

	if a.IsStudent() {
		rules = append(rules,
			rule{action: ActionRead, subject: SubjectStudent, pred: ownStudentRecord},
			rule{action: ActionCreate, subject: SubjectSubmission, pred: ownSubmission},
			rule{action: ActionRead, subject: SubjectSubmission, pred: ownSubmission},
			rule{action: ActionDelete, subject: SubjectSubmission, pred: ownSubmission},
			rule{action: ActionRead, subject: SubjectLecturer},
			rule{action: ActionRead, subject: SubjectProject},
			rule{action: ActionRead, subject: SubjectViva, pred: ownViva},
			rule{action: ActionRead, subject: SubjectSupervisor},
			rule{action: ActionRead, subject: SubjectExaminer},
			rule{action: ActionCreate, subject: SubjectFile},
			rule{action: ActionRead, subject: SubjectFile},
			rule{action: ActionUpdate, subject: SubjectFile},
			rule{action: ActionDelete, subject: SubjectFile},

			// Mahasiswa tidak pernah boleh mengarsipkan/mengubah project,
			// apapun kepemilikannya.
			rule{action: ActionCreate, subject: SubjectProject, deny: true},
			rule{action: ActionUpdate, subject: SubjectProject, deny: true},
		)
	}

	if a.IsLecturer() {
		// Baseline read-only untuk semua dosen.
		rules = append(rules,
			rule{action: ActionRead, subject: SubjectStudent},
			rule{action: ActionRead, subject: SubjectSubmission},
			rule{action: ActionRead, subject: SubjectProject},
			rule{action: ActionRead, subject: SubjectViva},
			rule{action: ActionRead, subject: SubjectLecturer},
			rule{action: ActionRead, subject: SubjectSupervisor},
			rule{action: ActionRead, subject: SubjectExaminer},
			rule{action: ActionRead, subject: SubjectFile},

			// Dosen yang dinominasikan boleh merespons nominasinya sendiri,
			// meskipun belum punya capability examiner (nominasi pertama).
			rule{action: ActionRead, subject: SubjectNomination, pred: nominationTargetsActor},
			rule{action: ActionUpdate, subject: SubjectNomination, pred: nominationTargetsActor},
		)
	}

	if a.IsSupervisor() {
		rules = append(rules,
			rule{action: ActionUpdate, subject: SubjectSubmission, pred: supervisedSubmission},
			rule{action: ActionCreate, subject: SubjectNomination},
			rule{action: ActionCreate, subject: SubjectViva},
		)
	}

	if a.IsExaminer() {
		rules = append(rules,
			rule{action: ActionRead, subject: SubjectNomination},
			rule{action: ActionUpdate, subject: SubjectNomination},
			rule{action: ActionRead, subject: SubjectViva, pred: assignedViva},
			// Pembuatan viva dicek tanpa scope: record-nya belum ada saat dicek.
			rule{action: ActionCreate, subject: SubjectViva},
			rule{action: ActionUpdate, subject: SubjectViva, pred: assignedViva},
		)
	}

	return rules
}

// ===============================
//  PREDICATE SCOPE PER RECORD
// ===============================

func ownStudentRecord(a Actor, record interface{}) bool {
	st, ok := record.(model.Student)
	return ok && a.Student != nil && st.ID == a.Student.ID
}

func ownSubmission(a Actor, record interface{}) bool {
	sub, ok := record.(model.Submission)
	return ok && a.Student != nil && sub.StudentID == a.Student.ID
}

func ownViva(a Actor, record interface{}) bool {
	v, ok := record.(model.Viva)
	return ok && a.Student != nil && v.StudentID == a.Student.ID
}

func nominationTargetsActor(a Actor, record interface{}) bool {
	nom, ok := record.(model.Nomination)
	return ok && a.Lecturer != nil && nom.LecturerID == a.Lecturer.ID
}

// supervisedSubmission: submission milik mahasiswa yang dibimbing actor.
// Record harus membawa Student ter-preload (atau minimal SupervisorID-nya).
func supervisedSubmission(a Actor, record interface{}) bool {
	sub, ok := record.(model.Submission)
	if !ok || a.Lecturer == nil || a.Lecturer.Supervisor == nil {
		return false
	}
	return sub.Student != nil && sub.Student.SupervisorID != nil &&
		*sub.Student.SupervisorID == a.Lecturer.Supervisor.ID
}

// assignedViva: viva yang daftar penguji-nya memuat examiner actor.
func assignedViva(a Actor, record interface{}) bool {
	v, ok := record.(model.Viva)
	if !ok || a.Lecturer == nil || a.Lecturer.Examiner == nil {
		return false
	}
	for _, ex := range v.Examiners {
		if ex.ID == a.Lecturer.Examiner.ID {
			return true
		}
	}
	return false
}
