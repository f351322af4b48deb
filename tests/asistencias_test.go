package tests

import (
	"context"
	"testing"
	"time"

	"github.com/iangusi/cafeteria-admin/internal/dto"
	"github.com/iangusi/cafeteria-admin/internal/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// relojMutable lets a test advance the clock between marks.
type relojMutable struct{ t time.Time }

func (r *relojMutable) Ahora() time.Time { return r.t }

func buildAsistenciaSvc(reloj service.Reloj) (service.AsistenciaService, *stubEmpleadoRepo, *stubAsistenciaRepo) {
	empleadoRepo := newStubEmpleadoRepo()
	asistenciaRepo := newStubAsistenciaRepo()
	svc := service.NewAsistenciaService(asistenciaRepo, empleadoRepo, reloj)
	return svc, empleadoRepo, asistenciaRepo
}

func seedEmpleadoConPassword(t *testing.T, repo *stubEmpleadoRepo, correo, password string) {
	t.Helper()
	e := seedEmpleado(repo, "Carla", correo, "barista", 150)
	require.NoError(t, e.SetPassword(password))
}

func marcaReq(tipo string) dto.MarcarAsistenciaRequest {
	return dto.MarcarAsistenciaRequest{
		Correo:   "carla@cafeteria.local",
		Password: "espresso-doble",
		Tipo:     tipo,
	}
}

func TestMarcarEntradaYSalida(t *testing.T) {
	reloj := &relojMutable{t: fechaFija(2026, 3, 4, 9, 2).Add(11 * time.Second)}
	svc, empleadoRepo, asistenciaRepo := buildAsistenciaSvc(reloj)
	seedEmpleadoConPassword(t, empleadoRepo, "carla@cafeteria.local", "espresso-doble")

	entrada, err := svc.Marcar(context.Background(), marcaReq("entrada"))
	require.NoError(t, err)
	assert.Equal(t, "entrada", entrada.Tipo)
	require.NotNil(t, entrada.Asistencia.HoraEntrada)
	assert.Equal(t, "09:02:11", *entrada.Asistencia.HoraEntrada)

	reloj.t = fechaFija(2026, 3, 4, 17, 45)
	salida, err := svc.Marcar(context.Background(), marcaReq("salida"))
	require.NoError(t, err)
	assert.Equal(t, "salida", salida.Tipo)
	require.NotNil(t, salida.Asistencia.HoraSalida)
	assert.Equal(t, "17:45:00", *salida.Asistencia.HoraSalida)
	// 09:02:11 → 17:45:00 = 8.71 horas
	assert.Equal(t, "8.71", salida.Asistencia.Horas)

	// one row per employee per day
	assert.Len(t, asistenciaRepo.asistencias, 1)

	_, err = svc.Marcar(context.Background(), marcaReq("salida"))
	assert.ErrorIs(t, err, service.ErrSalidaYaRegistrada)
}

func TestMarcarEntradaDuplicada(t *testing.T) {
	svc, empleadoRepo, _ := buildAsistenciaSvc(service.RelojFijo{T: fechaFija(2026, 3, 4, 9, 0)})
	seedEmpleadoConPassword(t, empleadoRepo, "carla@cafeteria.local", "espresso-doble")

	_, err := svc.Marcar(context.Background(), marcaReq("entrada"))
	require.NoError(t, err)

	// a mistaken second scan must not turn into a salida
	_, err = svc.Marcar(context.Background(), marcaReq("entrada"))
	assert.ErrorIs(t, err, service.ErrEntradaYaRegistrada)
}

func TestMarcarSalidaSinEntrada(t *testing.T) {
	svc, empleadoRepo, asistenciaRepo := buildAsistenciaSvc(service.RelojFijo{T: fechaFija(2026, 3, 4, 17, 0)})
	seedEmpleadoConPassword(t, empleadoRepo, "carla@cafeteria.local", "espresso-doble")

	// no attendance row at all
	_, err := svc.Marcar(context.Background(), marcaReq("salida"))
	assert.ErrorIs(t, err, service.ErrSalidaSinRegistro)

	// scheduled-shift placeholder without marks: still no entrada to close
	for _, e := range empleadoRepo.empleados {
		seedMarca(asistenciaRepo, e.ID, fechaFija(2026, 3, 4, 0, 0), "", "")
	}
	_, err = svc.Marcar(context.Background(), marcaReq("salida"))
	assert.ErrorIs(t, err, service.ErrSalidaSinEntrada)
	// the failed salida never created an entrada
	for _, a := range asistenciaRepo.asistencias {
		assert.Nil(t, a.HoraEntrada)
	}
}

func TestMarcarUsaPlaceholder(t *testing.T) {
	reloj := &relojMutable{t: fechaFija(2026, 3, 4, 8, 58)}
	svc, empleadoRepo, asistenciaRepo := buildAsistenciaSvc(reloj)
	seedEmpleadoConPassword(t, empleadoRepo, "carla@cafeteria.local", "espresso-doble")

	// the scheduled-shift placeholder already exists for today
	for _, e := range empleadoRepo.empleados {
		seedMarca(asistenciaRepo, e.ID, fechaFija(2026, 3, 4, 0, 0), "", "")
	}

	resp, err := svc.Marcar(context.Background(), marcaReq("entrada"))
	require.NoError(t, err)
	assert.Equal(t, "entrada", resp.Tipo)
	// the placeholder was reused, not duplicated
	assert.Len(t, asistenciaRepo.asistencias, 1)
}

func TestMarcarCredencialesInvalidas(t *testing.T) {
	svc, empleadoRepo, _ := buildAsistenciaSvc(service.RelojFijo{T: fechaFija(2026, 3, 4, 9, 0)})
	seedEmpleadoConPassword(t, empleadoRepo, "carla@cafeteria.local", "espresso-doble")

	_, err := svc.Marcar(context.Background(), dto.MarcarAsistenciaRequest{
		Correo:   "carla@cafeteria.local",
		Password: "incorrecta",
		Tipo:     "entrada",
	})
	assert.ErrorIs(t, err, service.ErrCredencialesInvalidas)

	_, err = svc.Marcar(context.Background(), dto.MarcarAsistenciaRequest{
		Correo:   "nadie@cafeteria.local",
		Password: "espresso-doble",
		Tipo:     "entrada",
	})
	assert.ErrorIs(t, err, service.ErrCredencialesInvalidas)
}

func TestMarcarEmpleadoInactivo(t *testing.T) {
	svc, empleadoRepo, _ := buildAsistenciaSvc(service.RelojFijo{T: fechaFija(2026, 3, 4, 9, 0)})
	seedEmpleadoConPassword(t, empleadoRepo, "carla@cafeteria.local", "espresso-doble")
	for _, e := range empleadoRepo.empleados {
		e.Activo = false
	}

	_, err := svc.Marcar(context.Background(), marcaReq("entrada"))
	assert.ErrorIs(t, err, service.ErrCredencialesInvalidas)
}

func TestActualizarAsistenciaManual(t *testing.T) {
	svc, empleadoRepo, asistenciaRepo := buildAsistenciaSvc(service.RelojFijo{T: fechaFija(2026, 3, 4, 12, 0)})
	e := seedEmpleado(empleadoRepo, "Leo", "leo@cafeteria.local", "cocinero", 140)
	a := seedMarca(asistenciaRepo, e.ID, fechaFija(2026, 3, 4, 0, 0), "09:00:00", "17:00:00")

	// manager fixes a forgotten clock-out and leaves a note
	nuevaSalida := "18:15:00"
	nota := "salió tarde por inventario"
	resp, err := svc.Actualizar(context.Background(), a.ID, dto.ActualizarAsistenciaRequest{
		HoraSalida: &nuevaSalida,
		Notas:      &nota,
	})
	require.NoError(t, err)
	assert.Equal(t, "18:15:00", *resp.HoraSalida)
	assert.Equal(t, nota, resp.Notas)
	assert.Equal(t, "9.25", resp.Horas)

	// empty string clears a mark
	limpio := ""
	resp, err = svc.Actualizar(context.Background(), a.ID, dto.ActualizarAsistenciaRequest{HoraSalida: &limpio})
	require.NoError(t, err)
	assert.Nil(t, resp.HoraSalida)
	assert.Equal(t, "0.00", resp.Horas)
}

func TestActualizarAsistenciaHoraInvalida(t *testing.T) {
	svc, empleadoRepo, asistenciaRepo := buildAsistenciaSvc(service.RelojFijo{T: fechaFija(2026, 3, 4, 12, 0)})
	e := seedEmpleado(empleadoRepo, "Leo", "leo@cafeteria.local", "cocinero", 140)
	a := seedMarca(asistenciaRepo, e.ID, fechaFija(2026, 3, 4, 0, 0), "09:00:00", "")

	mala := "99:99"
	_, err := svc.Actualizar(context.Background(), a.ID, dto.ActualizarAsistenciaRequest{HoraSalida: &mala})
	assert.ErrorContains(t, err, "hora inválida")
}

func TestListarAsistenciasPorRango(t *testing.T) {
	svc, empleadoRepo, asistenciaRepo := buildAsistenciaSvc(service.RelojFijo{T: fechaFija(2026, 3, 9, 9, 0)})
	e := seedEmpleado(empleadoRepo, "Leo", "leo@cafeteria.local", "cocinero", 140)

	seedMarca(asistenciaRepo, e.ID, fechaFija(2026, 3, 2, 0, 0), "09:00:00", "17:00:00")
	seedMarca(asistenciaRepo, e.ID, fechaFija(2026, 3, 4, 0, 0), "09:00:00", "")
	seedMarca(asistenciaRepo, e.ID, fechaFija(2026, 3, 20, 0, 0), "09:00:00", "17:00:00") // fuera de rango

	list, err := svc.ListarPorRango(context.Background(), e.ID, fechaFija(2026, 3, 2, 0, 0), fechaFija(2026, 3, 8, 0, 0))
	require.NoError(t, err)
	assert.Len(t, list, 2)
}
