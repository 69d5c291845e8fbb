package config

const (
	TokenOpt        = "token"
	VarDirOpt       = "var_dir"
	PortOpt         = "port"
	ServerRootOpt   = "server_root"
	VhostConfOpt    = "vhost_conf"
	SitesEnabledOpt = "sites_enabled_dir"
	PidFileOpt      = "pid_file"
	DebugOpt        = "debug"
)
