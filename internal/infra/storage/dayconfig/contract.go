package dayconfig

import "github.com/m04kA/SMC-AppointmentBot/pkg/txmanager"

// DBExecutor интерфейс для работы с БД (*sql.DB или *sql.Tx)
type DBExecutor = txmanager.DBExecutor
