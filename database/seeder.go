package database

import (
	"log"

	"thesis-management-backend/app/model"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// RunSeeders menjalankan seluruh seeder yang dibutuhkan.
// Panggil ini sekali di main.go setelah InitDB berhasil.
func RunSeeders(db *gorm.DB) {
	SeedUsers(db)
	SeedCapabilities(db)
}

// ===============================
//  SEED USERS
// ===============================

// SeedUsers menambahkan akun demo awal:
// - 1 mahasiswa (student1)
// - 2 dosen (lecturer1 calon pembimbing, lecturer2 calon penguji)
func SeedUsers(db *gorm.DB) {
	var count int64
	db.Model(&model.User{}).Count(&count)
	if count > 0 {
		log.Println("[SEEDER] User sudah ada, skip seeding.")
		return
	}

	password := "password123"
	hash, _ := bcrypt.GenerateFromPassword([]byte(password), 10)

	users := []model.User{
		{
			Name:         "Mahasiswa Satu",
			Email:        "student1@kampus.ac.id",
			PasswordHash: string(hash),
			Student:      &model.Student{MatricNumber: "P230001"},
		},
		{
			Name:         "Dosen Pembimbing",
			Email:        "lecturer1@kampus.ac.id",
			PasswordHash: string(hash),
			Lecturer:     &model.Lecturer{StaffNumber: "L001"},
		},
		{
			Name:         "Dosen Penguji",
			Email:        "lecturer2@kampus.ac.id",
			PasswordHash: string(hash),
			Lecturer:     &model.Lecturer{StaffNumber: "L002"},
		},
	}

	if err := db.Create(&users).Error; err != nil {
		log.Fatalf("[SEEDER] Gagal seed users: %v", err)
	}

	log.Println("[SEEDER] Berhasil seed 3 user (student1, lecturer1, lecturer2), password: password123")
}

// ===============================
//  SEED CAPABILITIES
// ===============================

// SeedCapabilities menjadikan lecturer1 sebagai supervisor dan menempelkan
// student1 sebagai mahasiswa bimbingannya, supaya alur nominasi -> sidang
// bisa langsung dicoba. lecturer2 sengaja dibiarkan polos: capability
// examiner-nya didapat lewat alur nominasi.
func SeedCapabilities(db *gorm.DB) {
	var supCount int64
	db.Model(&model.Supervisor{}).Count(&supCount)
	if supCount > 0 {
		log.Println("[SEEDER] Supervisor sudah ada, skip seeding capabilities.")
		return
	}

	var lect model.Lecturer
	if err := db.Where("staff_number = ?", "L001").First(&lect).Error; err != nil {
		log.Println("[SEEDER] Lecturer L001 tidak ditemukan, skip seeding capabilities.")
		return
	}

	sup := model.Supervisor{LecturerID: lect.ID}
	if err := db.Create(&sup).Error; err != nil {
		log.Fatalf("[SEEDER] Gagal membuat supervisor: %v", err)
	}

	var stu model.Student
	if err := db.Where("matric_number = ?", "P230001").First(&stu).Error; err != nil {
		log.Println("[SEEDER] Student P230001 tidak ditemukan, skip penempelan bimbingan.")
		return
	}
	if err := db.Model(&stu).Update("supervisor_id", sup.ID).Error; err != nil {
		log.Fatalf("[SEEDER] Gagal menempelkan student ke supervisor: %v", err)
	}

	log.Println("[SEEDER] Berhasil seed supervisor awal + bimbingan")
}
