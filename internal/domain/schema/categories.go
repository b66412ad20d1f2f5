package schema

// Default возвращает реестр всех категорий фичей панели.
func Default() *Registry {
	r, err := New(defaultCategories())
	if err != nil {
		panic("schema: некорректный встроенный реестр: " + err.Error())
	}
	return r
}

func defaultCategories() []Category {
	return []Category{
		{Table: "canes_antidrogas", Group: "canes", Slug: "antidrogas", Stats: StatsCanes, Fields: canineFields()},
		{Table: "canes_control_orden", Group: "canes", Slug: "control-orden", Stats: StatsCanes, Fields: canineFields()},
		{Table: "canes_busqueda", Group: "canes", Slug: "busqueda", Stats: StatsCanes, Fields: canineFields()},
		{Table: "canes_rel_publicas", Group: "canes", Slug: "rel-publicas", Stats: StatsCanes, Fields: canineFields()},
		{Table: "canes_terapia", Group: "canes", Slug: "terapia", Stats: StatsCanes, Fields: canineFields()},
		{Table: "camiones", Group: "vehiculos", Slug: "camiones", Stats: StatsVehiculos, Fields: []Field{
			{Name: "capacidad_carga_eje_delantero", Kind: KindNumber},
			{Name: "capacidad_carga_eje_trasero", Kind: KindNumber},
			{Name: "capacidad_carga", Kind: KindNumber},
			{Name: "peso_bruto", Kind: KindNumber},
			{Name: "peso_vacio", Kind: KindNumber},
			{Name: "neumaticos", Kind: KindText},
			{Name: "sistema_inyeccion", Kind: KindText},
			{Name: "norma_control_emisiones", Kind: KindText},
			{Name: "potencia_maxima", Kind: KindText},
			{Name: "torque_maximo", Kind: KindText},
			{Name: "cilindraje", Kind: KindText},
			{Name: "transmision_tipo", Kind: KindText},
			{Name: "numero_velocidades", Kind: KindText},
			{Name: "eje_delantero", Kind: KindText},
			{Name: "eje_trasero", Kind: KindText},
			{Name: "suspension_delantera", Kind: KindText},
			{Name: "suspension_trasera", Kind: KindText},
			{Name: "direccion", Kind: KindText},
			{Name: "frenos_servicio", Kind: KindText},
			{Name: "sistema_control", Kind: KindText},
			{Name: "frenos_estacionamiento", Kind: KindText},
			{Name: "frenos_motor", Kind: KindText},
			{Name: "imagen", Kind: KindFile},
		}},
		{Table: "vehiculos_camionetas", Group: "vehiculos", Slug: "camionetas", Stats: StatsVehiculos, Fields: lightVehicleFields()},
		{Table: "vehiculos_furgonetas", Group: "vehiculos", Slug: "furgonetas", Stats: StatsVehiculos, Fields: lightVehicleFields()},
		{Table: "muebles_oficina", Group: "muebles", Slug: "oficina", Stats: StatsMuebles, Fields: furnitureFields()},
		{Table: "muebles_dormitorio", Group: "muebles", Slug: "dormitorio", Stats: StatsMuebles, Fields: furnitureFields()},
		{Table: "computadores_escritorio", Group: "computadores", Slug: "escritorio", Stats: StatsTecno, Fields: []Field{
			{Name: "marca", Kind: KindText},
			{Name: "certificados", Kind: KindText},
			{Name: "chasis_tamano", Kind: KindText},
			{Name: "chasis_color", Kind: KindText},
			{Name: "equipo", Kind: KindText},
			{Name: "fabricante", Kind: KindText},
			{Name: "fuente_energia", Kind: KindText},
			{Name: "memoria_ram", Kind: KindText},
			{Name: "modelo", Kind: KindText},
			{Name: "modelo_procesador", Kind: KindText},
			{Name: "monitor_entradas_video", Kind: KindText},
			{Name: "monitor_tamano", Kind: KindText},
			{Name: "monitor_tipo_pantalla", Kind: KindText},
			{Name: "motherboard_ranuras_ram_ddr4", Kind: KindText},
			{Name: "motherboard_chipset", Kind: KindText},
			{Name: "motherboard_memoria_ram_expandible", Kind: KindText},
			{Name: "motherboard_puertos_funcionales", Kind: KindText},
			{Name: "motherboard_red_lan", Kind: KindText},
			{Name: "motherboard_seguridad", Kind: KindText},
			{Name: "mouse_interfaz_tipo", Kind: KindText},
			{Name: "nota_1", Kind: KindText},
			{Name: "procesador", Kind: KindText},
			{Name: "procesador_frecuencia_turbo_max", Kind: KindText},
			{Name: "procesador_memoria_cache", Kind: KindText},
			{Name: "procesador_numero_hilos_subprocesos", Kind: KindText},
			{Name: "procesador_numero_nucleos", Kind: KindText},
			{Name: "sistema_operativo_software_licenciado", Kind: KindText},
			{Name: "teclado_interfaz_idioma", Kind: KindText},
			{Name: "teclado_tamano", Kind: KindText},
			{Name: "unidad_estado_solido", Kind: KindText},
			{Name: "imagen", Kind: KindFile},
		}},
		{Table: "laptops", Group: "computadores", Slug: "laptops", Stats: StatsTecno, Fields: []Field{
			{Name: "accesorios_adaptador_video", Kind: KindText},
			{Name: "accesorios_cargador_bateria", Kind: KindText},
			{Name: "accesorios_maletin_mochila", Kind: KindText},
			{Name: "almacenamiento_cantidad", Kind: KindText},
			{Name: "almacenamiento_capacidad_minimo", Kind: KindText},
			{Name: "auriculares_microfono", Kind: KindText},
			{Name: "bateria_fuente_alimentacion", Kind: KindText},
			{Name: "baterias_duracion_minima", Kind: KindText},
			{Name: "camara_web", Kind: KindText},
			{Name: "certificados", Kind: KindText},
			{Name: "computador_marca", Kind: KindText},
			{Name: "computador_modelo", Kind: KindText},
			{Name: "equipo", Kind: KindText},
			{Name: "frecuencia_turbo_maximo", Kind: KindText},
			{Name: "mouse_externo_interfaz_tipo", Kind: KindText},
			{Name: "procesador_marca", Kind: KindText},
			{Name: "memoria_ram_expandible_minima", Kind: KindText},
			{Name: "procesador_modelo", Kind: KindText},
			{Name: "motherboard_ranuras_ram_ddr4", Kind: KindText},
			{Name: "motherboard_chipset", Kind: KindText},
			{Name: "motherboard_conectividad", Kind: KindText},
			{Name: "motherboard_memoria_ram_instalada", Kind: KindText},
			{Name: "motherboard_puertos_funcionales", Kind: KindText},
			{Name: "motherboard_seguridad", Kind: KindText},
			{Name: "mouse_tactil", Kind: KindText},
			{Name: "parlantes", Kind: KindText},
			{Name: "procesador_frecuencia_base_minimo", Kind: KindText},
			{Name: "procesador_memoria_cache_minimo", Kind: KindText},
			{Name: "procesador_numero_hilos_subprocesos_minimo", Kind: KindText},
			{Name: "procesador_numero_nucleos_minimo", Kind: KindText},
			{Name: "sistema_operativo_software_licenciado", Kind: KindText},
			{Name: "tamano_pantalla", Kind: KindText},
			{Name: "tarjeta_video_procesador_grafico_gpu", Kind: KindText},
			{Name: "teclado", Kind: KindText},
			{Name: "teclado_idioma", Kind: KindText},
			{Name: "tipo_pantalla", Kind: KindText},
			{Name: "imagen", Kind: KindFile},
		}},
		{Table: "impresoras_multifuncion", Group: "impresoras", Slug: "multifuncion", Stats: StatsTecno, Fields: []Field{
			{Name: "bandejas_alimentacion", Kind: KindText},
			{Name: "cantidad_usuarios", Kind: KindText},
			{Name: "ciclo_trabajo_maximo_paginas_mensual", Kind: KindText},
			{Name: "ciclo_recomendado_efectivo_mensual", Kind: KindText},
			{Name: "colores_impresion", Kind: KindText},
			{Name: "consumo_energetico_en_operacion", Kind: KindText},
			{Name: "cpc", Kind: KindText},
			{Name: "fabricante", Kind: KindText},
			{Name: "impresion_duplex", Kind: KindText},
			{Name: "marca", Kind: KindText},
			{Name: "modelo", Kind: KindText},
			{Name: "network", Kind: KindText},
			{Name: "resolucion_impresion", Kind: KindText},
			{Name: "sistemas_operativos_compatibles", Kind: KindText},
			{Name: "scan_duplex", Kind: KindText},
			{Name: "suministro_inicial_por_color", Kind: KindText},
			{Name: "tamano_papel_soportados", Kind: KindText},
			{Name: "tecnologia_impresion", Kind: KindText},
			{Name: "tiempo_garantia_tecnica", Kind: KindText},
			{Name: "vae", Kind: KindText},
			{Name: "velocidad_impresion", Kind: KindText},
			{Name: "imagen", Kind: KindFile},
		}},
		{Table: "scanners", Group: "perifericos", Slug: "scanners", Stats: StatsTecno, Fields: []Field{
			{Name: "capacidad_adf_hojas", Kind: KindText},
			{Name: "ciclo_trabajo_maximo_imagenes_diario", Kind: KindText},
			{Name: "conectividad", Kind: KindText},
			{Name: "consumo_energetico_en_operacion", Kind: KindText},
			{Name: "cpc", Kind: KindText},
			{Name: "escanear_duplex", Kind: KindText},
			{Name: "fabricante", Kind: KindText},
			{Name: "marca", Kind: KindText},
			{Name: "modelo", Kind: KindText},
			{Name: "resolucion_escanear", Kind: KindText},
			{Name: "sistemas_operativos_compatibles", Kind: KindText},
			{Name: "software_captura", Kind: KindText},
			{Name: "tamano_papel_soportados", Kind: KindText},
			{Name: "tiempo_garantia_tecnica", Kind: KindText},
			{Name: "vae", Kind: KindText},
			{Name: "velocidad_escanear_duplex", Kind: KindText},
			{Name: "velocidad_escanear_simple", Kind: KindText},
			{Name: "imagen", Kind: KindFile},
		}},
		{Table: "fuentes_poder", Group: "perifericos", Slug: "fuentes-poder", Stats: StatsTecno, Fields: []Field{
			{Name: "marca", Kind: KindText},
			{Name: "modelo", Kind: KindText},
			{Name: "potencia", Kind: KindText},
			{Name: "tipo_conectores", Kind: KindText},
			{Name: "eficiencia", Kind: KindText},
			{Name: "garantia", Kind: KindText},
			{Name: "imagen", Kind: KindFile},
		}},
		{Table: "camaras_web", Group: "perifericos", Slug: "camaras-web", Stats: StatsTecno, Fields: []Field{
			{Name: "marca", Kind: KindText},
			{Name: "modelo", Kind: KindText},
			{Name: "resolucion_video", Kind: KindText},
			{Name: "tipo_conexion", Kind: KindText},
			{Name: "compatibilidad_so", Kind: KindText},
			{Name: "microfono_integrado", Kind: KindText},
			{Name: "garantia", Kind: KindText},
			{Name: "imagen", Kind: KindFile},
		}},
		{Table: "microfonos", Group: "perifericos", Slug: "microfonos", Stats: StatsTecno, Fields: []Field{
			{Name: "marca", Kind: KindText},
			{Name: "modelo", Kind: KindText},
			{Name: "tipo_conexion", Kind: KindText},
			{Name: "compatibilidad_so", Kind: KindText},
			{Name: "sensibilidad", Kind: KindText},
			{Name: "garantia", Kind: KindText},
			{Name: "imagen", Kind: KindFile},
		}},
		{Table: "proyectores", Group: "perifericos", Slug: "proyectores", Stats: StatsTecno, Fields: []Field{
			{Name: "marca", Kind: KindText},
			{Name: "modelo", Kind: KindText},
			{Name: "resolucion_native", Kind: KindText},
			{Name: "brillo_lumenes_ansi", Kind: KindText},
			{Name: "contraste", Kind: KindText},
			{Name: "tipo_conexion", Kind: KindText},
			{Name: "compatibilidad_so", Kind: KindText},
			{Name: "garantia", Kind: KindText},
			{Name: "imagen", Kind: KindFile},
		}},
	}
}

// Общие поля пяти категорий служебных собак.
func canineFields() []Field {
	return []Field{
		{Name: "razas_requeridas", Kind: KindText},
		{Name: "edad_requerida", Kind: KindNumber},
		{Name: "caracteristicas_requeridas", Kind: KindText},
		{Name: "documentos_identidad", Kind: KindText},
		{Name: "requerimiento_veterinario", Kind: KindNumber},
		{Name: "imagen", Kind: KindFile},
	}
}

// Общие поля камионеток и фургонов.
func lightVehicleFields() []Field {
	return []Field{
		{Name: "alto_total_mm", Kind: KindNumber},
		{Name: "ancho_total_mm", Kind: KindNumber},
		{Name: "distancia_ejes_mm", Kind: KindNumber},
		{Name: "largo_total_mm", Kind: KindNumber},
		{Name: "direccion_tipo", Kind: KindText},
		{Name: "sensores_presion_llantas", Kind: KindText},
		{Name: "aire_acondicionado", Kind: KindText},
		{Name: "radio_pantalla", Kind: KindText},
		{Name: "volante_multifuncion", Kind: KindText},
		{Name: "alarma_fabrica", Kind: KindText},
		{Name: "asientos_ecocuero", Kind: KindText},
		{Name: "barra_tiro", Kind: KindText},
		{Name: "neblineros_delanteros", Kind: KindText},
		{Name: "recubrimiento_balde", Kind: KindText},
		{Name: "roll_bar", Kind: KindText},
		{Name: "velocidad_crucero", Kind: KindText},
		{Name: "vidrios_retrovisores_electricos", Kind: KindText},
		{Name: "color", Kind: KindText},
		{Name: "num_pasajeros", Kind: KindNumber},
		{Name: "fabricante", Kind: KindText},
		{Name: "frenos_delanteros", Kind: KindText},
		{Name: "frenos_tipo", Kind: KindText},
		{Name: "frenos_posteriores", Kind: KindText},
		{Name: "garantia", Kind: KindText},
		{Name: "marchas", Kind: KindText},
		{Name: "inmo_tipo", Kind: KindText},
		{Name: "inmo_traccion", Kind: KindText},
		{Name: "marca", Kind: KindText},
		{Name: "modelo", Kind: KindText},
		{Name: "motor_tipo", Kind: KindText},
		{Name: "motor_potencia", Kind: KindText},
		{Name: "motor_cilindrada", Kind: KindText},
		{Name: "motor_combustible", Kind: KindText},
		{Name: "motor_valvulas", Kind: KindText},
		{Name: "motor_torque", Kind: KindText},
		{Name: "seguridad", Kind: KindText},
		{Name: "suspension_amortiguadores", Kind: KindText},
		{Name: "suspension_neumatico", Kind: KindText},
		{Name: "suspension_posterior", Kind: KindText},
		{Name: "suspension_delantera", Kind: KindText},
		{Name: "imagen", Kind: KindFile},
	}
}

func furnitureFields() []Field {
	return []Field{
		{Name: "material", Kind: KindText},
		{Name: "dimensiones", Kind: KindText},
		{Name: "color", Kind: KindText},
		{Name: "peso", Kind: KindText},
		{Name: "garantia", Kind: KindText},
		{Name: "imagen", Kind: KindFile},
	}
}
