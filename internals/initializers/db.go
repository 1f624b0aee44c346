package initializers

import (
	"cinepass-auth/internals/config"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func ConnectToDb() {
	var err error
	dsn := config.GetEnvAsStr("DB_URL", "cinepass.db")

	// TranslateError turns driver unique-constraint violations into
	// gorm.ErrDuplicatedKey, which the user store depends on.
	DB, err = gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		panic("Failed to connect to DB")
	}
}
